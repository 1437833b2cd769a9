package ingestion_engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/metadata"
	"github.com/markdave123-py/Chunkwise/internal/core/output"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

type lineSplitter struct{}

// Split treats every non-empty line as one sentence.
func (lineSplitter) Split(text, _ string) ([]string, error) {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

func newTestIngestor(cfg *IngestConfig) *DocumentIngestor {
	clock := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	formatter := output.NewFormatter(
		metadata.NewValidatorWithClock(clock),
		output.WithLogger(logger.NewLogger(logger.TestConfig())),
		output.WithClock(clock),
	)
	return NewDocumentIngestor(
		chunking.NewDefaultRegistry(lineSplitter{}),
		NewDocumentExtractor(false, nil),
		formatter,
		metrics.New(),
		cfg,
	)
}

func TestDocumentIngestor_Process(t *testing.T) {
	ctx := logger.ContextWithLogger(context.Background(), logger.NewLogger(logger.TestConfig()))

	t.Run("Should chunk and format every document with one batch id", func(t *testing.T) {
		ing := newTestIngestor(nil)
		res, err := ing.Process(ctx, IngestRequest{
			Strategy: chunking.StrategySimple,
			Documents: []models.Document{
				{Type: "txt", Content: "first doc", Metadata: map[string]any{"source": "a.txt"}},
				{Type: "md", Content: "# second", Metadata: map[string]any{"source": "b.md"}},
			},
		})
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		assert.NotEmpty(t, res.BatchID)
		assert.Equal(t, chunking.StrategySimple, res.Strategy)
		for _, r := range res.Records {
			assert.Equal(t, res.BatchID, r.Metadata["batch_id"])
			assert.Equal(t, false, r.Metadata["has_validation_errors"])
		}
		assert.Equal(t, "markdown_document", res.Records[1].Metadata["document_type"])
	})

	t.Run("Should run the sentence windows end to end", func(t *testing.T) {
		ing := newTestIngestor(nil)
		res, err := ing.Process(ctx, IngestRequest{
			Strategy: chunking.StrategySentence,
			Params: &chunking.Params{
				MaxSentencesPerChunk: chunking.Int(2),
				OverlapSentences:     chunking.Int(0),
				MinSentenceLength:    chunking.Int(1),
			},
			Documents:        []models.Document{{Type: "md", Content: "one\ntwo\nthree", Metadata: map[string]any{"source": "a.md", "version": "1.2.3"}}},
			VersionIncrement: true,
		})
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "one two", res.Records[0].Text)
		assert.Equal(t, "three", res.Records[1].Text)
		assert.Equal(t, "1.2.4", res.Records[0].Metadata["version"])
		assert.Equal(t, 1, res.Records[1].Metadata["chunk_index"])
	})

	t.Run("Should fall back to the default strategy", func(t *testing.T) {
		ing := newTestIngestor(&IngestConfig{DefaultStrategy: chunking.StrategySimple})
		res, err := ing.Process(ctx, IngestRequest{Documents: []models.Document{{Type: "txt", Content: "x"}}})
		require.NoError(t, err)
		assert.Equal(t, chunking.StrategySimple, res.Strategy)
	})

	t.Run("Should layer extracted metadata under the caller's", func(t *testing.T) {
		ing := newTestIngestor(nil)
		res, err := ing.Process(ctx, IngestRequest{
			Strategy: chunking.StrategySimple,
			Documents: []models.Document{{
				Type:     "csv",
				Content:  "name,age\nAda,36\n",
				Metadata: map[string]any{"source": "people.csv", "column_count": 5},
			}},
		})
		require.NoError(t, err)
		meta := res.Records[0].Metadata
		assert.Equal(t, 5, meta["column_count"])
		assert.Equal(t, 1, meta["row_count"])
		assert.Equal(t, true, meta["header_row"])
	})

	t.Run("Should infer the type from the source extension", func(t *testing.T) {
		ing := newTestIngestor(nil)
		res, err := ing.Process(ctx, IngestRequest{
			Strategy:  chunking.StrategyJSONIndex,
			Documents: []models.Document{{Content: `{"a":{"b":1}}`, Metadata: map[string]any{"source": "d.json"}}},
		})
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "a.b", res.Records[0].Metadata["json_path"])
	})

	t.Run("Should reject unknown strategies", func(t *testing.T) {
		_, err := newTestIngestor(nil).Process(ctx, IngestRequest{Strategy: "nope"})
		require.ErrorIs(t, err, core.ErrUnknownStrategy)
	})

	t.Run("Should reject invalid params before extracting", func(t *testing.T) {
		_, err := newTestIngestor(nil).Process(ctx, IngestRequest{
			Strategy:  chunking.StrategySentence,
			Params:    &chunking.Params{MaxSentencesPerChunk: chunking.Int(3), OverlapSentences: chunking.Int(3)},
			Documents: []models.Document{{Type: "pdf", Content: "!!"}},
		})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
	})

	t.Run("Should reject disallowed types", func(t *testing.T) {
		ing := newTestIngestor(&IngestConfig{AllowedTypes: []string{"txt"}})
		_, err := ing.Process(ctx, IngestRequest{
			Strategy:  chunking.StrategySimple,
			Documents: []models.Document{{Type: "PDF", Content: "x"}},
		})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
		assert.Contains(t, err.Error(), `"pdf" is not allowed`)
	})

	t.Run("Should fail the batch on extraction errors", func(t *testing.T) {
		_, err := newTestIngestor(nil).Process(ctx, IngestRequest{
			Strategy: chunking.StrategySimple,
			Documents: []models.Document{
				{Type: "txt", Content: "fine"},
				{Type: "pdf", Content: "not base64!!"},
			},
		})
		require.ErrorIs(t, err, core.ErrExtraction)
		assert.Contains(t, err.Error(), "document 1")
	})

	t.Run("Should keep chunks whose metadata fails validation", func(t *testing.T) {
		res, err := newTestIngestor(nil).Process(ctx, IngestRequest{
			Strategy:  chunking.StrategySimple,
			Documents: []models.Document{{Type: "txt", Content: "pdf text", Metadata: map[string]any{"source": "a.pdf"}}},
		})
		require.NoError(t, err)
		assert.Equal(t, true, res.Records[0].Metadata["has_validation_errors"])
	})

	t.Run("Should stop on a cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newTestIngestor(nil).Process(cctx, IngestRequest{
			Strategy:  chunking.StrategySimple,
			Documents: []models.Document{{Type: "txt", Content: "x"}},
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}
