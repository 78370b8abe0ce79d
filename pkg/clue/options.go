package clue

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/bft-labs/clue/pkg/log"
)

// DefaultPingTimeout bounds the TCP connect performed by Ping.
const DefaultPingTimeout = 10 * time.Second

// HTTPClient executes trigger requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dialer opens the TCP connections used by Ping. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	httpClient  HTTPClient
	httpTimeout time.Duration
	dialer      Dialer
	logger      log.Logger
	pingTimeout time.Duration
}

// defaultOptions leaves httpClient nil; New builds it once httpTimeout is known.
func defaultOptions() options {
	return options{
		dialer:      &net.Dialer{},
		logger:      log.NewNoopLogger(),
		pingTimeout: DefaultPingTimeout,
	}
}

// newInsecureHTTPClient skips certificate verification and never follows
// redirects, so a 3xx answer reaches post as-is. A zero timeout leaves
// request duration to the transport defaults.
func newInsecureHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// WithHTTPClient replaces the HTTP client used by Execute. The caller is then
// responsible for its TLS settings.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithHTTPTimeout bounds each request made by the default HTTP client. It has
// no effect together with WithHTTPClient.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.httpTimeout = d
		}
	}
}

// WithDialer replaces the dialer used by Ping.
func WithDialer(dialer Dialer) Option {
	return func(o *options) {
		if dialer != nil {
			o.dialer = dialer
		}
	}
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPingTimeout overrides DefaultPingTimeout. Non-positive values are ignored.
func WithPingTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pingTimeout = d
		}
	}
}
