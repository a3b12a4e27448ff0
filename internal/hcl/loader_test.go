package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoad_TranslatesSourceBlocks(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "sources.hcl", `
		source "camera" {
			description = "Capture a photo"
			priority    = 20
			mimetypes   = ["image/jpeg", "image/png"]

			options {
				command = "imagesnap -q"
			}
		}

		source "weblink" {
			description = "Download a link"
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Sources, 2)

	camera := model.Sources["camera"]
	require.NotNil(t, camera)
	require.Equal(t, "Capture a photo", camera.Description)
	require.Equal(t, 20, camera.Priority)
	require.Equal(t, []string{"image/jpeg", "image/png"}, camera.Mimetypes)
	require.True(t, camera.DeclaresMimetypes())
	require.Equal(t, cty.StringVal("imagesnap -q"), camera.Options["command"])

	weblink := model.Sources["weblink"]
	require.NotNil(t, weblink)
	require.Zero(t, weblink.Priority)
	require.False(t, weblink.DeclaresMimetypes())
	require.Empty(t, weblink.Options)
}

func TestLoad_DuplicateDefinitionLastWins(t *testing.T) {
	dir := t.TempDir()
	// Files load in sorted order, so b.hcl overrides a.hcl.
	writeManifest(t, dir, "a.hcl", `
		source "camera" {
			priority = 1
		}
	`)
	writeManifest(t, dir, "b.hcl", `
		source "camera" {
			priority = 2
		}
	`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, 2, model.Sources["camera"].Priority)
}

func TestLoad_ParseErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.hcl", `source "x" {`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.hcl")
}

func TestLoad_EmptyDirectoryYieldsEmptyModel(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, model.Sources)
}

func TestTranslateSource_RejectsUnnamedBlock(t *testing.T) {
	_, err := NewLoader().translateSource(&Source{})
	require.Error(t, err)
}
