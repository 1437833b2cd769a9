package chunking

import (
	"strings"
	"unicode/utf8"

	"github.com/markdave123-py/Chunkwise/internal/models"
)

const StrategySentence = "sentence_chunker"

var sentenceDefaults = Params{
	MinSentenceLength:    Int(10),
	MaxSentencesPerChunk: Int(5),
	OverlapSentences:     Int(1),
	Language:             String("english"),
}

// sentenceSettings are the resolved, validated knobs of one chunking call.
type sentenceSettings struct {
	MinSentenceLength    int    `json:"min_sentence_length" validate:"gte=0"`
	MaxSentencesPerChunk int    `json:"max_sentences_per_chunk" validate:"gt=0"`
	OverlapSentences     int    `json:"overlap_sentences" validate:"gte=0,ltfield=MaxSentencesPerChunk"`
	Language             string `json:"language"`
}

// SentenceChunker groups sentences into overlapping windows.
type SentenceChunker struct {
	splitter SentenceSplitter
}

func NewSentenceChunker(splitter SentenceSplitter) *SentenceChunker {
	if splitter == nil {
		splitter = NewPunktSplitter()
	}
	return &SentenceChunker{splitter: splitter}
}

func (c *SentenceChunker) Name() string {
	return StrategySentence
}

func (c *SentenceChunker) ValidateParams(p Params) error {
	_, err := c.resolve(&p)
	return err
}

func (c *SentenceChunker) resolve(p *Params) (sentenceSettings, error) {
	merged, err := withDefaults(p, sentenceDefaults)
	if err != nil {
		return sentenceSettings{}, err
	}
	s := sentenceSettings{
		MinSentenceLength:    deref(merged.MinSentenceLength),
		MaxSentencesPerChunk: deref(merged.MaxSentencesPerChunk),
		OverlapSentences:     deref(merged.OverlapSentences),
		Language:             strings.ToLower(deref(merged.Language)),
	}
	if err := checkSettings(s); err != nil {
		return sentenceSettings{}, err
	}
	return s, nil
}

func (c *SentenceChunker) ChunkDocument(content string, metadata map[string]any, p *Params) ([]models.Chunk, error) {
	s, err := c.resolve(p)
	if err != nil {
		return nil, err
	}

	all, err := c.splitter.Split(content, s.Language)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(all))
	for _, sentence := range all {
		if utf8.RuneCountInString(sentence) >= s.MinSentenceLength {
			kept = append(kept, sentence)
		}
	}

	// Nothing survived the length filter: keep the document whole rather than drop it.
	if len(kept) == 0 {
		return []models.Chunk{{
			Content:  content,
			Metadata: chunkMetadata(metadata, map[string]any{"strategy": StrategySentence}),
		}}, nil
	}

	return windows(kept, s.MaxSentencesPerChunk, s.OverlapSentences, metadata), nil
}

// windows slides a window of size width with step width-overlap.
func windows(sentences []string, width, overlap int, metadata map[string]any) []models.Chunk {
	step := width - overlap
	chunks := make([]models.Chunk, 0, len(sentences)/step+1)
	for i := 0; i < len(sentences); i += step {
		end := min(i+width, len(sentences))
		window := sentences[i:end]
		if len(window) == 0 {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Content: strings.Join(window, " "),
			Metadata: chunkMetadata(metadata, map[string]any{
				"strategy":             StrategySentence,
				"chunk_index":          len(chunks),
				"sentences_count":      len(window),
				"start_sentence_index": i,
			}),
		})
	}
	return chunks
}
