// Package host drives frame-processing plugins the way a camera viewer does:
// it announces camera sessions, tracks which plugin displays are visible,
// and hands every arriving frame to each registered plugin in turn.
package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/fview-histogram/internal/histogram"
)

// Registry errors.
var (
	ErrDuplicatePlugin = errors.New("plugin already registered")
	ErrUnknownPlugin   = errors.New("unknown plugin")
)

// Registry manages the collection of available plugins, keyed by name.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]histogram.Plugin
	order   []string
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]histogram.Plugin),
	}
}

// Register adds a plugin. Names must be unique and non-empty.
func (r *Registry) Register(p histogram.Plugin) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin %T has an empty name", p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}
	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (histogram.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Plugins returns the registered plugins in registration order.
func (r *Registry) Plugins() []histogram.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]histogram.Plugin, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.plugins[name])
	}
	return out
}
