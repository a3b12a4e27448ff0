package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/vk/filepickgo/internal/testutil"
)

func TestValidation_ManifestWithoutGoSourceFailsStartup(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": `
			source "ghost" {
				priority = 1
			}
		`},
		&testutil.StaticModule{SourceName: "alpha"},
	)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "ghost")
	require.Contains(t, result.Err.Error(), "no registered Go source")
}

func TestValidation_FilterParityMismatchFailsStartup(t *testing.T) {
	result := testutil.BuildApp(t,
		map[string]string{"modules/sources.hcl": `
			source "alpha" {
				mimetypes = ["image/*"]
			}
		`},
		&testutil.StaticModule{SourceName: "alpha"},
	)
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "no mimetype filter")
}

func TestValidation_SourceWithoutManifestIsTolerated(t *testing.T) {
	result := testutil.BuildApp(t, nil,
		&testutil.StaticModule{SourceName: "alpha", Filter: registry.StaticMimetypes{"image/*"}},
	)
	require.NoError(t, result.Err)
	require.Equal(t, []string{"alpha"}, result.App.Registry().Names())
}
