package camera

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Source acquires a photo by running a platform capture command that
// writes to a path given as its final argument.
type Source struct {
	command string
}

// Name returns the stable source identity.
func (s *Source) Name() string { return "camera" }

// Data returns the picker presentation for the camera source.
func (s *Source) Data() registry.Presentation {
	return registry.Presentation{
		Title:  "Take photo",
		Icon:   "icon-camera",
		Class:  "source-camera",
		Action: s.capture,
	}
}

// Configure reads the manifest options.
func (s *Source) Configure(opts map[string]cty.Value) error {
	if v, ok := opts["command"]; ok {
		if err := gocty.FromCtyValue(v, &s.command); err != nil {
			return fmt.Errorf("camera: invalid 'command' option: %w", err)
		}
	}
	return nil
}

// capture runs the configured command against a fresh temp file and
// hands the file back with delete-after-use set.
func (s *Source) capture(ctx context.Context, req registry.ActionRequest) (*registry.ActionResult, error) {
	logger := ctxlog.FromContext(ctx).With("source", "camera")

	parts := strings.Fields(s.command)
	if len(parts) == 0 {
		return nil, errors.New("camera: no capture command configured")
	}

	tmp, err := os.CreateTemp("", "camera-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("camera: failed to create capture file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], tmpPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("camera: capture command failed: %w: %s", err, out)
	}

	if req.MaxSize > 0 {
		stat, err := os.Stat(tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("camera: failed to stat capture: %w", err)
		}
		if stat.Size() > req.MaxSize {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("camera: capture of %d bytes exceeds limit of %d", stat.Size(), req.MaxSize)
		}
	}

	logger.Info("Captured photo", "path", tmpPath)
	return &registry.ActionResult{Path: tmpPath, Delete: true}, nil
}

// Register registers the camera source with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource("camera", &registry.RegisteredSource{
		Source: &Source{},
		Filter: registry.StaticMimetypes{"image/jpeg", "image/png"},
	})
}
