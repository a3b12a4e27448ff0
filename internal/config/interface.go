package config

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader. The
// concrete HCL implementation lives in internal/hcl; tests supply their
// own loaders where convenient.
type Loader interface {
	// Load reads every manifest found under the given paths and
	// translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
