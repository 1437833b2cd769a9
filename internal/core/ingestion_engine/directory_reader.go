package ingestion_engine

import (
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/markdave123-py/Chunkwise/internal/models"
)

const DefaultPattern = "**/*"

// ListFiles reads every regular file under root matching a doublestar
// pattern such as "**/*.md". Results are sorted by path.
func ListFiles(root, pattern string) ([]models.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("list %s: not a directory", root)
	}
	return listFS(os.DirFS(root), root, pattern)
}

func listFS(fsys fs.FS, root, pattern string) ([]models.SourceFile, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	files := make([]models.SourceFile, 0, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files = append(files, models.SourceFile{
			Text:       string(data),
			SourcePath: filepath.Join(root, filepath.FromSlash(name)),
			Type:       normalizeType(path.Ext(name)),
		})
	}
	return files, nil
}

// DocumentsFromFiles turns listed files into ingest documents. Binary
// formats are base64 encoded the same way inline requests carry them.
func DocumentsFromFiles(files []models.SourceFile) []models.Document {
	docs := make([]models.Document, 0, len(files))
	for _, f := range files {
		content := f.Text
		if binaryTypes[f.Type] {
			content = base64.StdEncoding.EncodeToString([]byte(f.Text))
		}
		docs = append(docs, models.Document{
			Type:     f.Type,
			Content:  content,
			Metadata: map[string]any{"source": f.SourcePath},
		})
	}
	return docs
}
