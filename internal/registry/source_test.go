package registry_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/registry"
)

func TestActionResult_Validate(t *testing.T) {
	file := io.NopCloser(strings.NewReader("data"))

	tests := []struct {
		name    string
		result  *registry.ActionResult
		wantErr bool
	}{
		{"treated", &registry.ActionResult{Treated: true, Upload: "payload"}, false},
		{"path only", &registry.ActionResult{Path: "/tmp/f"}, false},
		{"file only", &registry.ActionResult{File: file}, false},
		{"both path and file", &registry.ActionResult{Path: "/tmp/f", File: file}, true},
		{"neither path nor file", &registry.ActionResult{}, true},
		{"nil result", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStaticMimetypes_SupportedMimetypes(t *testing.T) {
	filter := registry.StaticMimetypes{"image/jpeg", "video/*"}

	assert.Equal(t, []string{"image/jpeg"}, filter.SupportedMimetypes([]string{"image/jpeg", "image/png"}))
	assert.Equal(t, []string{"video/mp4"}, filter.SupportedMimetypes([]string{"video/mp4"}))
	assert.Empty(t, filter.SupportedMimetypes([]string{"audio/ogg"}))
	assert.Empty(t, filter.SupportedMimetypes(nil))

	// The wildcard must not match a bare type prefix collision.
	assert.Empty(t, registry.StaticMimetypes{"video/*"}.SupportedMimetypes([]string{"videotext"}))
}

func TestStaticMimetypes_MatchAll(t *testing.T) {
	filter := registry.StaticMimetypes{"*/*"}
	assert.Equal(t, []string{"application/pdf", "audio/ogg"},
		filter.SupportedMimetypes([]string{"application/pdf", "audio/ogg"}))
}

func TestSupportsAll_ReturnsRequestedUnchanged(t *testing.T) {
	requested := []string{"image/jpeg", "text/plain"}
	got := registry.SupportsAll{}.SupportedMimetypes(requested)
	assert.Equal(t, requested, got)

	// The result is a copy, not an alias.
	got[0] = "mutated"
	assert.Equal(t, "image/jpeg", requested[0])
}
