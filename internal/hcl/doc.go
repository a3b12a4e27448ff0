// Package hcl implements the HCL-backed manifest loader. It discovers
// .hcl files, decodes their `source` blocks and translates them into the
// format-agnostic model defined by internal/config.
package hcl
