package app

import (
	"context"
	"fmt"
	"time"

	"github.com/markdave123-py/Chunkwise/internal/config"
	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/ingestion_engine"
	"github.com/markdave123-py/Chunkwise/internal/core/metadata"
	objectclient "github.com/markdave123-py/Chunkwise/internal/core/object-client"
	"github.com/markdave123-py/Chunkwise/internal/core/output"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
)

type App struct {
	ObjectClient core.ObjectClient
	DocProcessor ingestion_engine.Ingestor
	Metrics      *metrics.Metrics
	Server       *Server
}

// NewIngestor builds the chunking pipeline shared by the server and the CLI.
// obj may be nil when object storage is not configured.
func NewIngestor(cfg *config.Config, obj core.ObjectClient, m *metrics.Metrics, log logger.Logger) *ingestion_engine.DocumentIngestor {
	registry := chunking.NewDefaultRegistry(chunking.NewPunktSplitter())
	formatter := output.NewFormatter(
		metadata.NewValidator(),
		output.WithLogger(log),
		output.WithMetrics(m),
	)
	extractor := ingestion_engine.NewDocumentExtractor(cfg.UseReadability, obj)

	return ingestion_engine.NewDocumentIngestor(registry, extractor, formatter, m, &ingestion_engine.IngestConfig{
		AllowedTypes:    cfg.AllowedTypes,
		DefaultStrategy: cfg.DefaultStrategy,
	})
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	log := logger.FromContext(ctx)
	m := metrics.New()

	var obj core.ObjectClient
	if cfg.ObjectStorageEnabled() {
		s3Client, err := objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("couldn't initialize the object client: %w", err)
		}
		obj = s3Client
		log.Info("object client initialized", "region", cfg.AwsRegion)
	}

	docIngestor := NewIngestor(cfg, obj, m, log)
	server := NewServer(cfg, docIngestor, m, log)

	return &App{ObjectClient: obj, DocProcessor: docIngestor, Metrics: m, Server: server}, nil
}
