package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/filepickgo/internal/ctxlog"
)

// Validate performs a strict parity check between manifests and Go code.
// Every manifest definition must have a registered source, and a
// manifest's declared mimetype support must match the Go side's filter
// capability. A registered source without a manifest is tolerated (its
// priority defaults to zero) but logged.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, def := range r.definitions {
		entry, ok := r.entries[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("source '%s': manifest has no registered Go source", name))
			continue
		}

		if def.DeclaresMimetypes() && entry.Filter == nil {
			errs = append(errs, fmt.Sprintf("source '%s': manifest declares mimetypes, but Go source has no mimetype filter", name))
		}
		if !def.DeclaresMimetypes() && entry.Filter != nil {
			errs = append(errs, fmt.Sprintf("source '%s': Go source filters by mimetype, but manifest declares none", name))
		}
	}

	for _, name := range r.order {
		if _, ok := r.definitions[name]; !ok {
			logger.Warn("Registered source has no manifest definition; priority defaults to 0.", "name", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
