package chunking

import "github.com/markdave123-py/Chunkwise/internal/models"

const StrategySimple = "simple_directory"

// SimpleChunker passes each document through as a single chunk.
type SimpleChunker struct{}

func NewSimpleChunker() *SimpleChunker {
	return &SimpleChunker{}
}

func (s *SimpleChunker) Name() string {
	return StrategySimple
}

func (s *SimpleChunker) ValidateParams(Params) error {
	return nil
}

func (s *SimpleChunker) ChunkDocument(content string, metadata map[string]any, _ *Params) ([]models.Chunk, error) {
	return []models.Chunk{{
		Content: content,
		Metadata: chunkMetadata(metadata, map[string]any{
			"strategy":    StrategySimple,
			"chunk_index": 0,
		}),
	}}, nil
}
