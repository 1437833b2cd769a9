package chunking

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

const StrategyJSONIndex = "json_index"

// rootPath names the single leaf of a document whose root is not an object.
const rootPath = "$"

// JSONIndexer emits one chunk per leaf of a JSON document. Nested objects
// are flattened into dot paths; arrays are kept whole as leaves.
type JSONIndexer struct{}

func NewJSONIndexer() *JSONIndexer {
	return &JSONIndexer{}
}

func (j *JSONIndexer) Name() string {
	return StrategyJSONIndex
}

// ValidateParams accepts anything; the indexer has no knobs.
func (j *JSONIndexer) ValidateParams(Params) error {
	return nil
}

func (j *JSONIndexer) ChunkDocument(content string, metadata map[string]any, _ *Params) ([]models.Chunk, error) {
	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: invalid JSON content", core.ErrExtraction)
	}

	root := gjson.Parse(content)
	var chunks []models.Chunk
	emit := func(path string, value gjson.Result) {
		chunks = append(chunks, models.Chunk{
			Content: leafText(value),
			Metadata: chunkMetadata(metadata, map[string]any{
				"strategy":    StrategyJSONIndex,
				"chunk_index": len(chunks),
				"json_path":   path,
			}),
		})
	}

	if !root.IsObject() {
		emit(rootPath, root)
		return chunks, nil
	}
	flatten(root, "", emit)
	return chunks, nil
}

// flatten walks objects depth-first in document order.
func flatten(obj gjson.Result, prefix string, emit func(string, gjson.Result)) {
	obj.ForEach(func(key, value gjson.Result) bool {
		path := key.String()
		if prefix != "" {
			path = prefix + "." + path
		}
		if value.IsObject() {
			flatten(value, path, emit)
		} else {
			emit(path, value)
		}
		return true
	})
}

func leafText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Null:
		return "null"
	default:
		return v.Raw
	}
}
