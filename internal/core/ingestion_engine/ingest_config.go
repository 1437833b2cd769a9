package ingestion_engine

import (
	"context"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/output"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// Ingestor is the batch entry point used by the HTTP and CLI surfaces.
type Ingestor interface {
	Process(ctx context.Context, req IngestRequest) (*IngestResult, error)
	Strategies() []string
}

var _ Ingestor = (*DocumentIngestor)(nil)

// IngestConfig tunes batch admission.
//
// AllowedTypes:    document `type` values accepted; empty allows all.
// DefaultStrategy: strategy used when a request names none.
type IngestConfig struct {
	AllowedTypes    []string
	DefaultStrategy string
}

// IngestRequest is one batch of documents chunked with a single strategy.
//
// Params:           nil uses the strategy defaults.
// VersionIncrement: bump the patch of every chunk's declared version.
type IngestRequest struct {
	Documents        []models.Document
	Strategy         string
	Params           *chunking.Params
	VersionIncrement bool
}

// IngestResult carries the formatted records of one batch.
type IngestResult struct {
	BatchID  string
	Strategy string
	Records  []models.Record
}

// DocumentIngestor runs the ingest pipeline:
//
// registry:  chunking strategies by name.
// extractor: raw document -> plain text.
// formatter: chunk validation and stamping.
// metrics:   optional; nil records nothing.
type DocumentIngestor struct {
	registry  *chunking.Registry
	extractor core.DocumentExtractor
	formatter *output.Formatter
	metrics   *metrics.Metrics
	cfg       *IngestConfig
}
