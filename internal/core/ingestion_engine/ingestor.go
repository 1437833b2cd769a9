package ingestion_engine

import (
	"context"
	"fmt"
	"path"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/output"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// NewDocumentIngestor wires the pipeline stages. cfg may be nil.
func NewDocumentIngestor(
	registry *chunking.Registry,
	extractor core.DocumentExtractor,
	formatter *output.Formatter,
	m *metrics.Metrics,
	cfg *IngestConfig,
) *DocumentIngestor {
	if cfg == nil {
		cfg = &IngestConfig{}
	}
	return &DocumentIngestor{
		registry:  registry,
		extractor: extractor,
		formatter: formatter,
		metrics:   m,
		cfg:       cfg,
	}
}

// Strategies lists the registered chunking strategies.
func (i *DocumentIngestor) Strategies() []string {
	return i.registry.List()
}

// Process extracts, chunks and formats one batch. The strategy and params
// are checked once up front; any extraction error fails the whole batch,
// metadata validation failures never do.
func (i *DocumentIngestor) Process(ctx context.Context, req IngestRequest) (res *IngestResult, err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		i.metrics.IngestObserved(status, time.Since(start))
	}()

	name := req.Strategy
	if name == "" {
		name = i.cfg.DefaultStrategy
	}
	strategy, err := i.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if req.Params != nil {
		if err := strategy.ValidateParams(*req.Params); err != nil {
			return nil, err
		}
	}

	batchID := uuid.NewString()
	log := logger.FromContext(ctx).With("batch_id", batchID, "strategy", name)

	var chunks []models.Chunk
	for idx, doc := range req.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docChunks, err := i.processDocument(ctx, name, doc, req.Params)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", idx, err)
		}
		i.metrics.ChunksEmitted(name, len(docChunks))
		chunks = append(chunks, docChunks...)
	}

	records := i.formatter.Format(chunks, req.VersionIncrement)
	for _, r := range records {
		r.Metadata["batch_id"] = batchID
	}
	log.Info("batch processed", "documents", len(req.Documents), "records", len(records))

	return &IngestResult{BatchID: batchID, Strategy: name, Records: records}, nil
}

// resolveType returns the normalized document type, falling back to the
// source extension and then to plain text.
func (i *DocumentIngestor) resolveType(doc models.Document) (string, error) {
	typ := normalizeType(doc.Type)
	if typ == "" {
		if source, ok := doc.Metadata["source"].(string); ok {
			if ext := normalizeType(path.Ext(source)); ext != "" {
				if _, known := knownTypes[ext]; known {
					typ = ext
				}
			}
		}
	}
	if typ == "" && doc.Content != "" {
		typ = "txt"
	}
	if typ != "" && len(i.cfg.AllowedTypes) > 0 && !slices.Contains(i.cfg.AllowedTypes, typ) {
		return "", fmt.Errorf("%w: document type %q is not allowed", core.ErrInvalidParameter, typ)
	}
	return typ, nil
}
