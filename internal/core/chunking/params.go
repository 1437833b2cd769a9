package chunking

import (
	"fmt"

	"dario.cat/mergo"
)

// Params carries optional chunking knobs. A nil field means "use the
// strategy default"; each strategy reads only the fields it understands.
type Params struct {
	MinSentenceLength    *int    `json:"min_sentence_length,omitempty"`
	MaxSentencesPerChunk *int    `json:"max_sentences_per_chunk,omitempty"`
	OverlapSentences     *int    `json:"overlap_sentences,omitempty"`
	Language             *string `json:"language,omitempty"`

	ChunkSize    *int `json:"chunk_size,omitempty"`
	ChunkOverlap *int `json:"chunk_overlap,omitempty"`
	HeadingLevel *int `json:"heading_level,omitempty"`
}

// Int returns a pointer to v, for building Params literals.
func Int(v int) *int { return &v }

// String returns a pointer to v, for building Params literals.
func String(v string) *string { return &v }

// withDefaults overlays p onto defaults. Explicit zero values in p are kept.
func withDefaults(p *Params, defaults Params) (Params, error) {
	var out Params
	if p != nil {
		out = *p
	}
	if err := mergo.Merge(&out, defaults, mergo.WithoutDereference); err != nil {
		return Params{}, fmt.Errorf("merge chunk params: %w", err)
	}
	return out, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
