package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vk/filepickgo/internal/config"
	"github.com/vk/filepickgo/internal/ctxlog"
)

// Module is the interface that all compiled-in source modules must
// implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredSource pairs a source with its optional capabilities.
type RegisteredSource struct {
	Source Source

	// Filter is nil when the source declares no mimetype support.
	Filter MimetypeFilter
}

// Entry is a read-only snapshot of one registered source, handed out by
// iteration methods.
type Entry struct {
	Name       string
	Source     Source
	Filter     MimetypeFilter
	Definition *config.SourceDefinition
}

// Registry is the ordered store of named file-acquisition sources. It
// tracks two memberships: the process-lifetime set of all registrations,
// and the site-scoped enabled subset iterated in enablement order.
//
// Registration is expected at startup and enablement changes are rare,
// but all state is guarded by a mutex so queries stay safe on
// multi-threaded hosts.
type Registry struct {
	mu sync.RWMutex

	order   []string
	entries map[string]*RegisteredSource

	enabledOrder []string
	enabled      map[string]struct{}

	definitions map[string]*config.SourceDefinition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		entries:     make(map[string]*RegisteredSource),
		enabled:     make(map[string]struct{}),
		definitions: make(map[string]*config.SourceDefinition),
	}
}

// RegisterSource adds a source under the given name. Registering an
// existing name overwrites the previous entry in place, keeping its
// registration position; the last registration wins.
func (r *Registry) RegisterSource(name string, src *RegisteredSource) {
	if name == "" {
		panic("registry: source name must not be empty")
	}
	if src == nil || src.Source == nil {
		panic(fmt.Sprintf("registry: nil source registered under name '%s'", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		slog.Debug("Overwriting registered source.", "name", name)
	} else {
		r.order = append(r.order, name)
		slog.Debug("Registering source.", "name", name)
	}
	r.entries[name] = src
}

// Lookup returns the registration entry for a name.
func (r *Registry) Lookup(name string) (*RegisteredSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src, ok := r.entries[name]
	return src, ok
}

// Names returns all registered source names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Enable adds a registered source to the site-scoped enabled subset.
// Enabling an already enabled source keeps its original position.
func (r *Registry) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("cannot enable unknown source '%s'", name)
	}
	if _, ok := r.enabled[name]; ok {
		return nil
	}
	r.enabled[name] = struct{}{}
	r.enabledOrder = append(r.enabledOrder, name)
	return nil
}

// Disable removes a source from the enabled subset. The registration
// itself is untouched. Disabling a source that is not enabled is a no-op.
func (r *Registry) Disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enabled[name]; !ok {
		return
	}
	delete(r.enabled, name)
	r.enabledOrder = slices.DeleteFunc(r.enabledOrder, func(n string) bool { return n == name })
}

// DisableAll empties the enabled subset, leaving all registrations in
// place. Idempotent.
func (r *Registry) DisableAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.enabled)
	r.enabledOrder = r.enabledOrder[:0]
}

// EnabledSources returns a snapshot of the enabled sources in enablement
// order.
func (r *Registry) EnabledSources() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.enabledOrder))
	for _, name := range r.enabledOrder {
		src := r.entries[name]
		out = append(out, Entry{
			Name:       name,
			Source:     src.Source,
			Filter:     src.Filter,
			Definition: r.definitions[name],
		})
	}
	return out
}

// PopulateDefinitionsFromModel copies the loaded manifest definitions
// from the config model into the registry for resolution during queries.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, def := range model.Sources {
		r.definitions[name] = def
	}
}

// Definition returns the manifest definition for a source name.
func (r *Registry) Definition(name string) (*config.SourceDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[name]
	return def, ok
}

// ConfigureSources hands each source the evaluated options from its
// manifest definition. Sources that do not implement Configurable and
// definitions without options are skipped.
func (r *Registry) ConfigureSources(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, entry := range r.snapshot() {
		def := entry.Definition
		if def == nil || len(def.Options) == 0 {
			continue
		}
		cfg, ok := entry.Source.(Configurable)
		if !ok {
			logger.Warn("Manifest declares options for a source that takes none.", "name", entry.Name)
			continue
		}
		if err := cfg.Configure(def.Options); err != nil {
			return fmt.Errorf("failed to configure source '%s': %w", entry.Name, err)
		}
		logger.Debug("Source configured from manifest options.", "name", entry.Name)
	}
	return nil
}

// snapshot returns all registered entries in registration order.
func (r *Registry) snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		src := r.entries[name]
		out = append(out, Entry{
			Name:       name,
			Source:     src.Source,
			Filter:     src.Filter,
			Definition: r.definitions[name],
		})
	}
	return out
}
