package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/filepickgo/internal/config"
	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file under the given paths, parses them and
// translates their source blocks into the format-agnostic config model.
// A source name defined twice keeps the last definition, matching the
// registry's overwrite semantics.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{Sources: make(map[string]*config.SourceDefinition)}

	parser := hclparse.NewParser()
	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk manifest path %s: %w", path, err)
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl manifest files found in path", "path", path)
			continue
		}

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse manifest file %s: %w", filePath, diags)
			}

			var manifest Manifest
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &manifest); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode manifest file %s: %w", filePath, diags)
			}

			for _, src := range manifest.Sources {
				def, err := l.translateSource(src)
				if err != nil {
					return nil, fmt.Errorf("invalid source %q in %s: %w", src.Name, filePath, err)
				}
				if _, exists := model.Sources[def.Name]; exists {
					logger.Warn("Duplicate source definition, last one wins", "name", def.Name, "file", filePath)
				}
				model.Sources[def.Name] = def
			}
			logger.Debug("Loaded manifest file", "file", filePath, "sources", len(manifest.Sources))
		}
	}

	logger.Info("Manifests loaded.", "source_definitions", len(model.Sources))
	return model, nil
}
