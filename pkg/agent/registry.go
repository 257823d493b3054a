package agent

import (
	"sort"
	"sync"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

// Factory defines the abstract interface for agent-variant creators.
// This allows the server to support new variants (custom agents registered
// by embedding applications) without modifying the dispatch logic.
type Factory interface {
	// Create instantiates a concrete Agent implementation using the raw
	// configuration block for its tag and the shared system configuration.
	// The returned agent is uninitialized; the dispatcher initializes it
	// before first use.
	Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (api.Agent, error)
}

// Registry maps agent tags (e.g., "echo", "vertex") to their factories.
// It is an explicitly owned object handed to the dispatcher at construction
// time rather than process-wide mutable state. Callers register entries at
// startup; registering during live traffic is unsupported, though reads are
// guarded so lookups stay safe either way.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty agent registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register inserts or replaces the factory for tag. Silent overwrite is the
// designed behavior: last registration wins, which is what lets embedding
// code swap a built-in variant for a custom one.
func (r *Registry) Register(tag string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[tag] = factory
}

// Resolve returns the factory registered for tag, or an
// UnknownAgentTypeError if the tag is absent.
func (r *Registry) Resolve(tag string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[tag]
	if !ok {
		return nil, api.UnknownAgentTypeError(tag)
	}
	return factory, nil
}

// Tags returns the sorted list of registered agent tags.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
