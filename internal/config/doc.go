// Package config defines the format-agnostic model for source manifests.
//
// Manifests describe the declarative half of a file-acquisition source:
// its identity, display description, ranking priority, declared mimetype
// support and free-form options. The model deliberately knows nothing
// about HCL; translation from concrete syntax is the job of internal/hcl.
package config
