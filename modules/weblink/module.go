package weblink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/vk/filepickgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Source downloads a remote URL. The embedding UI injects the chosen
// link through SetURL; the manifest may configure a default for kiosks.
//
// The source declares no mimetype support: a link can point at anything,
// so it only appears in unfiltered picker queries.
type Source struct {
	url    string
	client *http.Client
}

// Name returns the stable source identity.
func (s *Source) Name() string { return "weblink" }

// Data returns the picker presentation for the weblink source.
func (s *Source) Data() registry.Presentation {
	return registry.Presentation{
		Title:  "Add link",
		Icon:   "icon-link",
		Class:  "source-weblink",
		Action: s.fetch,
	}
}

// SetURL sets the link the next action will download.
func (s *Source) SetURL(u string) { s.url = u }

// Configure reads the manifest options.
func (s *Source) Configure(opts map[string]cty.Value) error {
	if v, ok := opts["url"]; ok {
		if err := gocty.FromCtyValue(v, &s.url); err != nil {
			return fmt.Errorf("weblink: invalid 'url' option: %w", err)
		}
	}
	if v, ok := opts["timeout"]; ok {
		var raw string
		if err := gocty.FromCtyValue(v, &raw); err != nil {
			return fmt.Errorf("weblink: invalid 'timeout' option: %w", err)
		}
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("weblink: failed to parse timeout: %w", err)
		}
		s.client = &http.Client{Timeout: timeout}
	}
	return nil
}

// fetch downloads the link. With an upload func on the request the body
// is streamed straight through it and the result is treated; otherwise
// the body lands in a temp file handed back for deletion after use.
func (s *Source) fetch(ctx context.Context, req registry.ActionRequest) (*registry.ActionResult, error) {
	logger := ctxlog.FromContext(ctx).With("source", "weblink", "url", s.url)

	if s.url == "" {
		return nil, errors.New("weblink: no URL set")
	}
	parsed, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("weblink: failed to parse URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("weblink: failed to create download request: %w", err)
	}

	client := s.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("weblink: failed to execute download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weblink: download failed with status: %s", resp.Status)
	}

	body := io.Reader(resp.Body)
	if req.MaxSize > 0 {
		body = io.LimitReader(resp.Body, req.MaxSize+1)
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		name = "download"
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if req.Upload != nil {
		counter := &countingReader{r: body}
		payload, err := req.Upload(ctx, name, contentType, counter)
		if err != nil {
			return nil, fmt.Errorf("weblink: upload failed: %w", err)
		}
		if req.MaxSize > 0 && counter.n > req.MaxSize {
			return nil, fmt.Errorf("weblink: download exceeds limit of %d bytes", req.MaxSize)
		}
		logger.Info("Downloaded link straight into upload", "name", name, "contentType", contentType, "size", counter.n)
		return &registry.ActionResult{Treated: true, Upload: payload}, nil
	}

	tmp, err := os.CreateTemp("", "weblink-*")
	if err != nil {
		return nil, fmt.Errorf("weblink: failed to create download file: %w", err)
	}
	written, err := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("weblink: failed to write download: %w", err)
	}
	if req.MaxSize > 0 && written > req.MaxSize {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("weblink: download exceeds limit of %d bytes", req.MaxSize)
	}

	logger.Info("Downloaded link", "path", tmp.Name(), "size", written, "contentType", contentType)
	return &registry.ActionResult{Path: tmp.Name(), Delete: true}, nil
}

// countingReader tracks how many bytes the upload pulled through, so the
// size limit can be enforced on the streamed branch too.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Register registers the weblink source with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSource("weblink", &registry.RegisteredSource{
		Source: &Source{},
	})
}
