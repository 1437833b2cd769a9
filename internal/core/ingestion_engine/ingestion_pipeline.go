package ingestion_engine

import (
	"context"
	"maps"

	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// processDocument runs one document through extract -> enrich -> chunk.
func (i *DocumentIngestor) processDocument(ctx context.Context, strategy string, doc models.Document, p *chunking.Params) ([]models.Chunk, error) {
	typ, err := i.resolveType(doc)
	if err != nil {
		return nil, err
	}
	doc.Type = typ

	extracted, err := i.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	return i.registry.Apply(strategy, extracted.Text, enrich(doc.Metadata, extracted.Metadata), p)
}

// enrich layers extracted metadata under the caller's. Caller values win.
func enrich(callerMeta, extracted map[string]any) map[string]any {
	out := make(map[string]any, len(callerMeta)+len(extracted))
	maps.Copy(out, extracted)
	maps.Copy(out, callerMeta)
	return out
}
