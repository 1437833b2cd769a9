package core

import (
	"context"

	"github.com/markdave123-py/Chunkwise/internal/models"
)

// ExtractedText is the plain text of one document plus metadata learned
// while extracting it (page counts, HTML structure, CSV shape).
type ExtractedText struct {
	Text     string
	Metadata map[string]any
}

// DocumentExtractor turns a raw document into plain text.
type DocumentExtractor interface {
	// Extract fails with ErrExtraction on malformed input.
	Extract(ctx context.Context, doc models.Document) (ExtractedText, error)
}
