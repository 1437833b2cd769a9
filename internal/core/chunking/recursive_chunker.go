package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

const StrategyRecursive = "recursive_text_splitter"

var recursiveDefaults = Params{
	ChunkSize:    Int(1000),
	ChunkOverlap: Int(200),
}

type recursiveSettings struct {
	ChunkSize    int `json:"chunk_size" validate:"gt=0"`
	ChunkOverlap int `json:"chunk_overlap" validate:"gte=0,ltfield=ChunkSize"`
}

// RecursiveChunker splits on paragraph, line, then word boundaries until
// pieces fit chunk_size characters.
type RecursiveChunker struct{}

func NewRecursiveChunker() *RecursiveChunker {
	return &RecursiveChunker{}
}

func (c *RecursiveChunker) Name() string {
	return StrategyRecursive
}

func (c *RecursiveChunker) ValidateParams(p Params) error {
	_, err := c.resolve(&p)
	return err
}

func (c *RecursiveChunker) resolve(p *Params) (recursiveSettings, error) {
	merged, err := withDefaults(p, recursiveDefaults)
	if err != nil {
		return recursiveSettings{}, err
	}
	s := recursiveSettings{
		ChunkSize:    deref(merged.ChunkSize),
		ChunkOverlap: deref(merged.ChunkOverlap),
	}
	return s, checkSettings(s)
}

func (c *RecursiveChunker) ChunkDocument(content string, metadata map[string]any, p *Params) ([]models.Chunk, error) {
	s, err := c.resolve(p)
	if err != nil {
		return nil, err
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.ChunkSize),
		textsplitter.WithChunkOverlap(s.ChunkOverlap),
		textsplitter.WithLenFunc(utf8.RuneCountInString),
	)
	segments, err := splitter.SplitText(content)
	if err != nil {
		return nil, fmt.Errorf("%w: recursive split: %v", core.ErrExtraction, err)
	}

	chunks := make([]models.Chunk, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment)
		if text == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Content: text,
			Metadata: chunkMetadata(metadata, map[string]any{
				"strategy":    StrategyRecursive,
				"chunk_index": len(chunks),
				"chunk_size":  utf8.RuneCountInString(text),
			}),
		})
	}
	return chunks, nil
}
