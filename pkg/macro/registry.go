package macro

import (
	"slices"
	"sync"

	errs "github.com/matzehuels/mermaidmacro/pkg/errors"
)

// Registry maps macro tags to plugins. Plugins are added explicitly by the
// caller; nothing is discovered.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates a registry containing plugins.
// A later plugin with the same tag replaces an earlier one.
func NewRegistry(plugins ...Plugin) *Registry {
	r := &Registry{plugins: make(map[string]Plugin, len(plugins))}
	for _, p := range plugins {
		r.Register(p)
	}
	return r
}

// Register adds p under its tag name.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.Info().TagName] = p
}

// Get returns the plugin registered for tag.
func (r *Registry) Get(tag string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[tag]
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "no plugin for macro tag %q", tag)
	}
	return p, nil
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.plugins))
	for tag := range r.plugins {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Plugins returns the registered plugins ordered by tag.
func (r *Registry) Plugins() []Plugin {
	tags := r.Tags()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(tags))
	for _, tag := range tags {
		if p, ok := r.plugins[tag]; ok {
			out = append(out, p)
		}
	}
	return out
}
