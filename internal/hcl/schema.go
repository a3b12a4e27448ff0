package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// Manifest represents the top-level structure of a manifest file,
// containing any number of source definitions.
type Manifest struct {
	Sources []*Source `hcl:"source,block"`
	Body    hcl.Body  `hcl:",remain"`
}

// Source represents a `source` block from a manifest file. It is the
// declarative counterpart of a Go module registered under the same name.
type Source struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Priority    int          `hcl:"priority,optional"`
	Mimetypes   []string     `hcl:"mimetypes,optional"`
	Options     *OptionsBody `hcl:"options,block"`
}

// OptionsBody represents the content of the `options` block within a
// source definition. Attributes are free-form; the owning Go module
// decides what it understands.
type OptionsBody struct {
	Body hcl.Body `hcl:",remain"`
}
