package registry

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Source is the capability contract implemented by every file-acquisition
// source. A source offers one way to obtain a file (camera capture,
// gallery pick, remote download, ...) and describes how the picker UI
// should render it.
type Source interface {
	// Name returns the stable identity the source is registered under.
	Name() string

	// Data returns the presentation metadata the picker renders for this
	// source. Called once per query; implementations should be cheap.
	Data() Presentation
}

// MimetypeFilter is the optional narrowing capability of a source. It is
// held as an explicit, possibly nil field of the registration entry: a
// nil filter means the source declares no mimetype support and is
// excluded from filtered queries.
type MimetypeFilter interface {
	// SupportedMimetypes returns the subset of the requested content
	// types the source can act on. An empty result excludes the source
	// from the query.
	SupportedMimetypes(requested []string) []string
}

// Configurable is implemented by sources that accept options from their
// manifest's options block.
type Configurable interface {
	Configure(opts map[string]cty.Value) error
}

// ActionFunc acquires a file when the user activates the source's entry
// in the picker. Its eventual settlement is the caller's business; the
// registry neither tracks nor serializes in-flight actions.
type ActionFunc func(ctx context.Context, req ActionRequest) (*ActionResult, error)

// RenderHook runs after the picker has rendered the source's entry.
type RenderHook func(ctx context.Context, req ActionRequest)

// UploadFunc is supplied by the caller when the acquired file should be
// uploaded directly instead of handed back. It returns an opaque
// upload-result payload.
type UploadFunc func(ctx context.Context, name string, contentType string, r io.Reader) (any, error)

// Presentation is the render metadata a source exposes to the picker UI.
type Presentation struct {
	Title       string
	Icon        string
	Class       string
	Action      ActionFunc
	AfterRender RenderHook
}

// ActionRequest carries the picker's constraints into a source's action.
type ActionRequest struct {
	// MaxSize caps the acquired file size in bytes. Zero means unlimited.
	MaxSize int64

	// Upload, when non-nil, asks the source to stream the acquired file
	// through it and return a treated result.
	Upload UploadFunc

	// AllowOffline permits sources that can serve without connectivity.
	AllowOffline bool

	// Mimetypes is the content-type constraint the picker was opened with.
	Mimetypes []string
}

// ActionResult describes the outcome of a source's action. When Treated
// is false, exactly one of Path and File carries the acquired file.
type ActionResult struct {
	// Treated reports that the file was fully handled by the source
	// itself, for example already uploaded through the request's Upload.
	Treated bool

	// Path is the filesystem location of the acquired file.
	Path string

	// File is an open handle to the acquired file. The caller owns it.
	File io.ReadCloser

	// Delete asks the caller to remove the source file after use.
	Delete bool

	// Upload is the opaque upload-result payload for treated outcomes.
	Upload any
}

// Validate checks the result's structural invariant.
func (r *ActionResult) Validate() error {
	if r == nil {
		return errors.New("action result is nil")
	}
	if r.Treated {
		return nil
	}
	if (r.Path == "") == (r.File == nil) {
		return errors.New("untreated action result must carry exactly one of path or file handle")
	}
	return nil
}

// StaticMimetypes is a MimetypeFilter backed by a fixed declared set.
// Declared entries may use a wildcard subtype ("image/*") or the
// match-anything "*/*".
type StaticMimetypes []string

// SupportedMimetypes returns the requested types matched by the declared set.
func (s StaticMimetypes) SupportedMimetypes(requested []string) []string {
	var out []string
	for _, req := range requested {
		for _, decl := range s {
			if matchMimetype(decl, req) {
				out = append(out, req)
				break
			}
		}
	}
	return out
}

// SupportsAll is the sentinel filter for sources that accept any content
// type. Distinct from a nil filter, which declares no support at all.
type SupportsAll struct{}

// SupportedMimetypes returns the requested types unchanged.
func (SupportsAll) SupportedMimetypes(requested []string) []string {
	return slices.Clone(requested)
}

func matchMimetype(declared, requested string) bool {
	if declared == "*/*" || declared == requested {
		return true
	}
	if prefix, ok := strings.CutSuffix(declared, "/*"); ok {
		return strings.HasPrefix(requested, prefix+"/")
	}
	return false
}
