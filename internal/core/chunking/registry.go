package chunking

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// Strategy is a named, swappable chunking algorithm.
type Strategy interface {
	// Name is the key the strategy is registered under.
	Name() string
	// ValidateParams reports core.ErrInvalidParameter for unusable params.
	ValidateParams(p Params) error
	// ChunkDocument splits content; p may be nil to use defaults.
	ChunkDocument(content string, metadata map[string]any, p *Params) ([]models.Chunk, error)
}

// Registry maps strategy names to implementations. Registering a name
// twice replaces the earlier implementation and keeps its list position.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	order      []string
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// NewDefaultRegistry returns a registry holding every built-in strategy.
func NewDefaultRegistry(splitter SentenceSplitter) *Registry {
	r := NewRegistry()
	r.Register(NewSentenceChunker(splitter))
	r.Register(NewRecursiveChunker())
	r.Register(NewMarkdownChunker())
	r.Register(NewJSONIndexer())
	r.Register(NewSimpleChunker())
	return r
}

func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := s.Name()
	if _, exists := r.strategies[name]; !exists {
		r.order = append(r.order, name)
	}
	r.strategies[name] = s
}

func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", core.ErrUnknownStrategy, name, strings.Join(r.order, ", "))
	}
	return s, nil
}

// Apply looks up the strategy, validates params when given and chunks.
func (r *Registry) Apply(name, content string, metadata map[string]any, p *Params) ([]models.Chunk, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if p != nil {
		if err := s.ValidateParams(*p); err != nil {
			return nil, err
		}
	}
	return s.ChunkDocument(content, metadata, p)
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// chunkMetadata copies the document metadata and adds the chunk fields.
// The copy is shallow; nested values are deep-copied later by the validator.
func chunkMetadata(metadata map[string]any, extra map[string]any) map[string]any {
	out := make(map[string]any, len(metadata)+len(extra))
	maps.Copy(out, metadata)
	maps.Copy(out, extra)
	return out
}
