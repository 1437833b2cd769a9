package chunking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Chunkwise/internal/core"
)

type stubSplitter struct {
	sentences []string
	err       error
	calls     int
}

func (s *stubSplitter) Split(string, string) ([]string, error) {
	s.calls++
	return s.sentences, s.err
}

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Sentence number %02d here.", i)
	}
	return out
}

func TestSentenceChunker_ValidateParams(t *testing.T) {
	c := NewSentenceChunker(&stubSplitter{})

	t.Run("Should accept defaults", func(t *testing.T) {
		require.NoError(t, c.ValidateParams(Params{}))
	})

	t.Run("Should reject overlap equal to max", func(t *testing.T) {
		err := c.ValidateParams(Params{MaxSentencesPerChunk: Int(3), OverlapSentences: Int(3)})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "overlap_sentences must be less than max_sentences_per_chunk")
	})

	t.Run("Should reject zero max", func(t *testing.T) {
		err := c.ValidateParams(Params{MaxSentencesPerChunk: Int(0), OverlapSentences: Int(0)})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "max_sentences_per_chunk must be positive")
	})

	t.Run("Should reject negative min length", func(t *testing.T) {
		err := c.ValidateParams(Params{MinSentenceLength: Int(-1)})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "min_sentence_length must be non-negative")
	})

	t.Run("Should reject negative overlap", func(t *testing.T) {
		err := c.ValidateParams(Params{OverlapSentences: Int(-2)})
		require.ErrorIs(t, err, core.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "overlap_sentences")
	})

	t.Run("Should accept any language", func(t *testing.T) {
		require.NoError(t, c.ValidateParams(Params{Language: String("german")}))
	})

	t.Run("Should keep an explicit zero overlap", func(t *testing.T) {
		s, err := c.resolve(&Params{OverlapSentences: Int(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, s.OverlapSentences)
		assert.Equal(t, 5, s.MaxSentencesPerChunk)
		assert.Equal(t, 10, s.MinSentenceLength)
	})
}

func TestSentenceChunker_ChunkDocument(t *testing.T) {
	t.Run("Should tag every chunk with its producer and window", func(t *testing.T) {
		c := NewSentenceChunker(&stubSplitter{sentences: numbered(4)})
		chunks, err := c.ChunkDocument("ignored", map[string]any{"source": "a.txt"},
			&Params{MaxSentencesPerChunk: Int(2), OverlapSentences: Int(0)})
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		for i, ch := range chunks {
			assert.Equal(t, StrategySentence, ch.Metadata["strategy"])
			assert.Equal(t, i, ch.Metadata["chunk_index"])
			assert.Equal(t, 2, ch.Metadata["sentences_count"])
			assert.Equal(t, i*2, ch.Metadata["start_sentence_index"])
			assert.Equal(t, "a.txt", ch.Metadata["source"])
		}
		assert.Equal(t, "Sentence number 00 here. Sentence number 01 here.", chunks[0].Content)
	})

	t.Run("Should not mutate caller metadata", func(t *testing.T) {
		meta := map[string]any{"source": "a.txt"}
		c := NewSentenceChunker(&stubSplitter{sentences: numbered(3)})
		_, err := c.ChunkDocument("x", meta, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"source": "a.txt"}, meta)
	})

	t.Run("Should return the original content when every sentence is too short", func(t *testing.T) {
		content := "Hi. Ok. No."
		c := NewSentenceChunker(&stubSplitter{sentences: []string{"Hi.", "Ok.", "No."}})
		chunks, err := c.ChunkDocument(content, map[string]any{"source": "s.txt"}, nil)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, content, chunks[0].Content)
		assert.Equal(t, map[string]any{"source": "s.txt", "strategy": StrategySentence}, chunks[0].Metadata)
	})

	t.Run("Should drop short sentences before windowing", func(t *testing.T) {
		c := NewSentenceChunker(&stubSplitter{sentences: []string{"Too short", "Long enough sentence.", "Tiny", "Another long sentence."}})
		chunks, err := c.ChunkDocument("x", nil, &Params{MinSentenceLength: Int(10)})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Long enough sentence. Another long sentence.", chunks[0].Content)
		assert.Equal(t, 2, chunks[0].Metadata["sentences_count"])
	})

	t.Run("Should propagate splitter failures", func(t *testing.T) {
		boom := fmt.Errorf("%w: tokenizer broke", core.ErrExtraction)
		c := NewSentenceChunker(&stubSplitter{err: boom})
		_, err := c.ChunkDocument("x", nil, nil)
		require.ErrorIs(t, err, core.ErrExtraction)
	})

	t.Run("Should not split when params are invalid", func(t *testing.T) {
		splitter := &stubSplitter{sentences: numbered(3)}
		c := NewSentenceChunker(splitter)
		_, err := c.ChunkDocument("x", nil, &Params{MaxSentencesPerChunk: Int(2), OverlapSentences: Int(2)})
		require.True(t, errors.Is(err, core.ErrInvalidParameter))
		assert.Zero(t, splitter.calls)
	})
}

func TestSentenceChunker_WindowCoverage(t *testing.T) {
	t.Run("Should cover every sentence and share exactly overlap sentences", func(t *testing.T) {
		for n := 1; n <= 12; n++ {
			for width := 1; width <= 5; width++ {
				for overlap := 0; overlap < width; overlap++ {
					c := NewSentenceChunker(&stubSplitter{sentences: numbered(n)})
					chunks, err := c.ChunkDocument("x", nil, &Params{
						MaxSentencesPerChunk: Int(width),
						OverlapSentences:     Int(overlap),
						MinSentenceLength:    Int(0),
					})
					require.NoError(t, err)

					covered := make([]bool, n)
					prevEnd := -1
					for i, ch := range chunks {
						require.Equal(t, i, ch.Metadata["chunk_index"])
						start := ch.Metadata["start_sentence_index"].(int)
						count := ch.Metadata["sentences_count"].(int)
						require.Positive(t, count)
						end := start + count
						for k := start; k < end; k++ {
							covered[k] = true
						}
						if i > 0 {
							shared := prevEnd - start
							if end == n && count < width {
								require.LessOrEqual(t, shared, overlap)
							} else {
								require.Equal(t, overlap, shared, "n=%d width=%d overlap=%d", n, width, overlap)
							}
						}
						prevEnd = end
					}
					for k, ok := range covered {
						require.True(t, ok, "sentence %d uncovered (n=%d width=%d overlap=%d)", k, n, width, overlap)
					}
				}
			}
		}
	})
}

func TestSentenceChunker_Punkt(t *testing.T) {
	t.Run("Should window five sentences with step two", func(t *testing.T) {
		content := "This is the first sentence. This is the second sentence. Here comes the third one! " +
			"And this is sentence four. Finally, this is the fifth sentence."
		c := NewSentenceChunker(nil)
		chunks, err := c.ChunkDocument(content, map[string]any{"source": "test.txt"}, &Params{
			MaxSentencesPerChunk: Int(3),
			MinSentenceLength:    Int(10),
			OverlapSentences:     Int(1),
		})
		require.NoError(t, err)
		require.Len(t, chunks, 3)

		starts := make([]int, 0, 3)
		counts := make([]int, 0, 3)
		for _, ch := range chunks {
			starts = append(starts, ch.Metadata["start_sentence_index"].(int))
			counts = append(counts, ch.Metadata["sentences_count"].(int))
		}
		assert.Equal(t, []int{0, 2, 4}, starts)
		assert.Equal(t, []int{3, 3, 1}, counts)
		assert.Equal(t, "Finally, this is the fifth sentence.", chunks[2].Content)
	})

	t.Run("Should fail for a language without a model", func(t *testing.T) {
		_, err := NewPunktSplitter().Split("Hola. Adiós.", "spanish")
		require.ErrorIs(t, err, core.ErrExtraction)
	})

	t.Run("Should surface a missing model as an extraction error", func(t *testing.T) {
		chunks, err := NewDefaultRegistry(nil).Apply(StrategySentence, "Das ist der erste Satz. Das ist der zweite Satz.",
			map[string]any{}, &Params{Language: String("german")})
		require.ErrorIs(t, err, core.ErrExtraction)
		assert.NotErrorIs(t, err, core.ErrInvalidParameter)
		assert.Empty(t, chunks)
	})
}
