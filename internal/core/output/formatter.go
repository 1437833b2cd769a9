package output

import (
	"errors"
	"maps"
	"time"
	"unicode/utf8"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/metadata"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// Formatter turns chunks into the records handed to the embedding service.
type Formatter struct {
	validator *metadata.Validator
	log       logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Formatter)

func WithLogger(l logger.Logger) Option {
	return func(f *Formatter) { f.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Formatter) { f.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(f *Formatter) { f.now = now }
}

func NewFormatter(validator *metadata.Validator, opts ...Option) *Formatter {
	if validator == nil {
		validator = metadata.NewValidator()
	}
	f := &Formatter{
		validator: validator,
		log:       logger.GetDefault(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format validates and stamps every chunk. Schema violations are logged
// and flagged on the record; they never drop a chunk.
func (f *Formatter) Format(chunks []models.Chunk, versionIncrement bool) []models.Record {
	records := make([]models.Record, 0, len(chunks))
	for _, ch := range chunks {
		meta := ch.Metadata
		if versionIncrement {
			if v, ok := meta[metadata.FieldVersion].(string); ok {
				meta = withField(meta, metadata.FieldVersion, metadata.IncrementVersion(v))
			}
		}

		validated, err := f.validator.Validate(meta)
		hasErrors := err != nil
		if hasErrors {
			docType, _ := validated[metadata.FieldDocumentType].(string)
			var verr *core.ValidationError
			if errors.As(err, &verr) && verr.DocumentType != "" {
				docType = verr.DocumentType
			}
			f.log.Warn("metadata validation failed",
				"source", validated[metadata.FieldSource],
				"document_type", docType,
				"error", err)
			f.metrics.ValidationFailed(docType)
		}

		validated["processed_at"] = f.now().UTC().Format(time.RFC3339)
		validated["content_length"] = utf8.RuneCountInString(ch.Content)
		validated["has_validation_errors"] = hasErrors

		records = append(records, models.Record{Text: ch.Content, Metadata: validated})
	}
	return records
}

func withField(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	maps.Copy(out, m)
	out[key] = value
	return out
}
