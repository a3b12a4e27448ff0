package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of every source
// manifest known to the application.
type Model struct {
	Sources map[string]*SourceDefinition
}

// SourceDefinition is the format-agnostic representation of a single
// `source` manifest block. It carries the declarative half of a source:
// the behavioural half (action, filtering logic) lives in the registered
// Go module of the same name.
type SourceDefinition struct {
	// Name is the stable identity of the source, shared with the Go side.
	Name        string
	Description string

	// Priority is a numeric ranking hint attached to query records.
	// Higher means earlier in the consumer's display order; 0 is the
	// ordering-neutral default for manifests that omit it.
	Priority int

	// Mimetypes is the set of content types the source declares support
	// for. A nil slice means the source declares no mimetype support at
	// all and is excluded from filtered queries.
	Mimetypes []string

	// Options holds the evaluated attributes of the manifest's `options`
	// block, handed verbatim to the Go module at registration time.
	Options map[string]cty.Value
}

// DeclaresMimetypes reports whether the manifest carries a mimetype set.
func (d *SourceDefinition) DeclaresMimetypes() bool {
	return d.Mimetypes != nil
}
