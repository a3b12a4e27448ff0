package bus

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"

	"github.com/vk/filepickgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// RemoteOptions configures the socket listener.
type RemoteOptions struct {
	// URL of the hub's socket.io endpoint, including the mount path.
	URL string

	// Namespace to join. Empty means the root namespace.
	Namespace string

	// Topics are the hub event names forwarded onto the dispatcher.
	// Defaults to the logout topic when empty.
	Topics []Topic

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// RemoteListener keeps a socket.io connection to the hub and republishes
// its session events on the local dispatcher.
type RemoteListener struct {
	io *socket.Socket
}

// ListenRemote connects to the hub and forwards the configured event
// names to the dispatcher. The connection is kept open until Close.
func ListenRemote(ctx context.Context, d *Dispatcher, opts RemoteOptions) (*RemoteListener, error) {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse events URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification for events hub")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	topics := opts.Topics
	if len(topics) == 0 {
		topics = []Topic{TopicLogout}
	}

	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to events hub", "sid", io.Id())
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		logger.Warn("Events hub connection error", "error", fmt.Sprint(errs...))
	})

	for _, t := range topics {
		topic := t
		io.On(types.EventName(string(topic)), func(...any) {
			logger.Debug("Remote event received", "topic", string(topic))
			d.Publish(ctx, topic)
		})
	}

	logger.Debug("Remote event listener attached", "topics", len(topics))
	return &RemoteListener{io: io}, nil
}

// Close disconnects from the hub.
func (l *RemoteListener) Close() error {
	l.io.Disconnect()
	return nil
}
