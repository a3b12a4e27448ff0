package gallery

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Source picks the most recent file under a configured directory that
// matches the requested content types.
type Source struct {
	directory string
}

// Name returns the stable source identity.
func (s *Source) Name() string { return "gallery" }

// Data returns the picker presentation for the gallery source.
func (s *Source) Data() registry.Presentation {
	return registry.Presentation{
		Title:       "Choose from gallery",
		Icon:        "icon-gallery",
		Class:       "source-gallery",
		Action:      s.pick,
		AfterRender: s.afterRender,
	}
}

// Configure reads the manifest options. A leading "~" in the directory
// is expanded to the user's home, so shipped manifests can stay
// machine-independent.
func (s *Source) Configure(opts map[string]cty.Value) error {
	if v, ok := opts["directory"]; ok {
		if err := gocty.FromCtyValue(v, &s.directory); err != nil {
			return fmt.Errorf("gallery: invalid 'directory' option: %w", err)
		}
		if s.directory == "~" || strings.HasPrefix(s.directory, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("gallery: failed to expand '~' in directory: %w", err)
			}
			s.directory = filepath.Join(home, strings.TrimPrefix(s.directory, "~"))
		}
	}
	return nil
}

// afterRender reports whether the gallery directory is reachable so the
// UI can grey the entry out early.
func (s *Source) afterRender(ctx context.Context, req registry.ActionRequest) {
	logger := ctxlog.FromContext(ctx).With("source", "gallery")
	if _, err := os.Stat(s.directory); err != nil {
		logger.Warn("Gallery directory unavailable", "directory", s.directory, "error", err)
		return
	}
	logger.Debug("Gallery directory available", "directory", s.directory)
}

// pick returns the newest regular file in the directory whose extension
// maps to one of the requested content types. With no constraint every
// file qualifies.
func (s *Source) pick(ctx context.Context, req registry.ActionRequest) (*registry.ActionResult, error) {
	logger := ctxlog.FromContext(ctx).With("source", "gallery")

	if s.directory == "" {
		return nil, errors.New("gallery: no directory configured")
	}

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("gallery: failed to read directory: %w", err)
	}

	patterns := registry.StaticMimetypes(req.Mimetypes)
	var newest string
	var newestMod time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contentType := mime.TypeByExtension(filepath.Ext(entry.Name()))
		contentType, _, _ = strings.Cut(contentType, ";")
		if len(req.Mimetypes) > 0 {
			if contentType == "" || len(patterns.SupportedMimetypes([]string{contentType})) == 0 {
				continue
			}
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if req.MaxSize > 0 && info.Size() > req.MaxSize {
			continue
		}
		if info.ModTime().After(newestMod) {
			newest = entry.Name()
			newestMod = info.ModTime()
		}
	}

	if newest == "" {
		return nil, fmt.Errorf("gallery: no file in %s matches the requested types", s.directory)
	}

	path := filepath.Join(s.directory, newest)
	logger.Info("Picked gallery file", "path", path)
	return &registry.ActionResult{Path: path}, nil
}

// Register registers the gallery source with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource("gallery", &registry.RegisteredSource{
		Source: &Source{},
		Filter: registry.StaticMimetypes{"image/*", "video/*"},
	})
}
