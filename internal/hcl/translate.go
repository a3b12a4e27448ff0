package hcl

import (
	"fmt"

	"github.com/vk/filepickgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// translateSource converts the HCL-specific source schema into the
// agnostic model. Option attributes are evaluated eagerly; manifests are
// static documents with no variable scope, so a nil evaluation context
// is sufficient.
func (l *Loader) translateSource(s *Source) (*config.SourceDefinition, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("source block is missing its name label")
	}

	def := &config.SourceDefinition{
		Name:        s.Name,
		Description: s.Description,
		Priority:    s.Priority,
		Mimetypes:   s.Mimetypes,
	}

	if s.Options != nil && s.Options.Body != nil {
		attrs, diags := s.Options.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid options block: %w", diags)
		}
		def.Options = make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate option %q: %w", name, diags)
			}
			def.Options[name] = val
		}
	}

	return def, nil
}
