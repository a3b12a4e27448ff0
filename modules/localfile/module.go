package localfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Source hands back an already existing local file. The embedding UI
// injects the chosen path through SetPath; an optional root confines
// choices to a directory tree.
type Source struct {
	root string
	path string
}

// Name returns the stable source identity.
func (s *Source) Name() string { return "localfile" }

// Data returns the picker presentation for the local file source.
func (s *Source) Data() registry.Presentation {
	return registry.Presentation{
		Title:  "Choose local file",
		Icon:   "icon-folder",
		Class:  "source-localfile",
		Action: s.open,
	}
}

// SetPath sets the file the next action will open.
func (s *Source) SetPath(p string) { s.path = p }

// Configure reads the manifest options.
func (s *Source) Configure(opts map[string]cty.Value) error {
	if v, ok := opts["root"]; ok {
		if err := gocty.FromCtyValue(v, &s.root); err != nil {
			return fmt.Errorf("localfile: invalid 'root' option: %w", err)
		}
	}
	return nil
}

// open returns an open handle to the chosen file. The file stays in
// place; the caller must not delete it.
func (s *Source) open(ctx context.Context, req registry.ActionRequest) (*registry.ActionResult, error) {
	logger := ctxlog.FromContext(ctx).With("source", "localfile")

	if s.path == "" {
		return nil, errors.New("localfile: no path set")
	}

	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return nil, fmt.Errorf("localfile: failed to resolve path: %w", err)
	}
	if s.root != "" {
		absRoot, err := filepath.Abs(s.root)
		if err != nil {
			return nil, fmt.Errorf("localfile: failed to resolve root: %w", err)
		}
		rel, err := filepath.Rel(absRoot, absPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, fmt.Errorf("localfile: path %s escapes root %s", absPath, absRoot)
		}
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("localfile: failed to open file: %w", err)
	}
	if req.MaxSize > 0 {
		stat, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("localfile: failed to stat file: %w", err)
		}
		if stat.Size() > req.MaxSize {
			f.Close()
			return nil, fmt.Errorf("localfile: file of %d bytes exceeds limit of %d", stat.Size(), req.MaxSize)
		}
	}

	logger.Info("Opened local file", "path", absPath)
	return &registry.ActionResult{File: f}, nil
}

// Register registers the local file source with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource("localfile", &registry.RegisteredSource{
		Source: &Source{},
		Filter: registry.SupportsAll{},
	})
}
