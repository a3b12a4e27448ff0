package voice

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

// Source records an audio clip by running a platform record command that
// writes to a path given as its final argument.
type Source struct {
	command string
}

// Name returns the stable source identity.
func (s *Source) Name() string { return "voice" }

// Data returns the picker presentation for the voice source.
func (s *Source) Data() registry.Presentation {
	return registry.Presentation{
		Title:  "Record voice message",
		Icon:   "icon-microphone",
		Class:  "source-voice",
		Action: s.record,
	}
}

// Configure reads the manifest options.
func (s *Source) Configure(opts map[string]cty.Value) error {
	if v, ok := opts["command"]; ok {
		if err := gocty.FromCtyValue(v, &s.command); err != nil {
			return fmt.Errorf("voice: invalid 'command' option: %w", err)
		}
	}
	return nil
}

func (s *Source) record(ctx context.Context, req registry.ActionRequest) (*registry.ActionResult, error) {
	logger := ctxlog.FromContext(ctx).With("source", "voice")

	parts := strings.Fields(s.command)
	if len(parts) == 0 {
		return nil, errors.New("voice: no record command configured")
	}

	tmp, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		return nil, fmt.Errorf("voice: failed to create recording file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], tmpPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("voice: record command failed: %w: %s", err, out)
	}

	if req.MaxSize > 0 {
		stat, err := os.Stat(tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("voice: failed to stat recording: %w", err)
		}
		if stat.Size() > req.MaxSize {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("voice: recording of %d bytes exceeds limit of %d", stat.Size(), req.MaxSize)
		}
	}

	logger.Info("Recorded voice message", "path", tmpPath)
	return &registry.ActionResult{Path: tmpPath, Delete: true}, nil
}

// Register registers the voice source with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource("voice", &registry.RegisteredSource{
		Source: &Source{},
		Filter: registry.StaticMimetypes{"audio/*"},
	})
}
