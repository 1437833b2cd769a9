package chunking

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/markdave123-py/Chunkwise/internal/core"
)

// SentenceSplitter breaks text into ordered sentences.
type SentenceSplitter interface {
	Split(text, language string) ([]string, error)
}

// PunktSplitter wraps the Punkt tokenizer. Models are loaded lazily,
// once per process, and are read-only afterwards.
type PunktSplitter struct {
	once      sync.Once
	tokenizer *sentences.DefaultSentenceTokenizer
	loadErr   error
}

// SupportedLanguages lists languages with a bundled Punkt model.
var SupportedLanguages = []string{"english"}

func NewPunktSplitter() *PunktSplitter {
	return &PunktSplitter{}
}

func (p *PunktSplitter) load() {
	p.tokenizer, p.loadErr = english.NewSentenceTokenizer(nil)
}

func (p *PunktSplitter) Split(text, language string) ([]string, error) {
	if !slices.Contains(SupportedLanguages, language) {
		return nil, fmt.Errorf("%w: no sentence model for language %q", core.ErrExtraction, language)
	}
	p.once.Do(p.load)
	if p.loadErr != nil {
		return nil, fmt.Errorf("%w: load sentence model: %v", core.ErrExtraction, p.loadErr)
	}

	tokens := p.tokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, s := range tokens {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
