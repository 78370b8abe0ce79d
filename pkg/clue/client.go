package clue

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/clue/pkg/log"
)

// Unreachable is returned by Ping when no connection could be made.
const Unreachable int64 = -1

// Client triggers clues on a single Clue server.
//
// A Client is meant for a single caller: endpoint mutation is not
// synchronized with Ping or Execute.
type Client struct {
	endpoint    Endpoint
	httpClient  HTTPClient
	dialer      Dialer
	logger      log.Logger
	pingTimeout time.Duration
}

// New validates host and returns a Client for host:port.
func New(host string, port int, opts ...Option) (*Client, error) {
	endpoint, err := NewEndpoint(host, port)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = newInsecureHTTPClient(o.httpTimeout)
	}

	return &Client{
		endpoint:    endpoint,
		httpClient:  o.httpClient,
		dialer:      o.dialer,
		logger:      o.logger,
		pingTimeout: o.pingTimeout,
	}, nil
}

// NewDefault is New with DefaultPort.
func NewDefault(host string, opts ...Option) (*Client, error) {
	return New(host, DefaultPort, opts...)
}

// Endpoint returns a copy of the current endpoint.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// Host returns the current host.
func (c *Client) Host() string { return c.endpoint.Host() }

// Port returns the current port.
func (c *Client) Port() int { return c.endpoint.Port() }

// SetHost replaces the host; on error the previous host is kept.
func (c *Client) SetHost(host string) error { return c.endpoint.SetHost(host) }

// SetPort replaces the port without validation.
func (c *Client) SetPort(port int) { c.endpoint.SetPort(port) }

// ResetPort restores DefaultPort.
func (c *Client) ResetPort() { c.endpoint.ResetPort() }

// Ping opens a TCP connection to the endpoint and returns the connect time in
// whole milliseconds, or Unreachable if the connection fails or does not
// complete within the ping timeout.
func (c *Client) Ping(ctx context.Context) int64 {
	addr := c.endpoint.Address()

	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	start := time.Now()
	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug("ping failed", log.String("addr", addr), log.Err(err))
		return Unreachable
	}
	conn.Close()

	ms := int64(math.Round(float64(elapsed) / float64(time.Millisecond)))
	c.logger.Debug("ping", log.String("addr", addr), log.Int64("latency_ms", ms))
	return ms
}

// Execute triggers the named clue.
//
// With async false it blocks until the server answers and returns transport
// errors and non-2xx statuses (*StatusError). With async true the request is
// handed to a background goroutine and Execute returns nil at once; the
// outcome is only logged and delivery is lost if the process exits first.
func (c *Client) Execute(ctx context.Context, clueName string, async bool) error {
	url := c.endpoint.ClueURL(clueName)
	triggerID := uuid.NewString()

	if !async {
		return c.post(ctx, url, triggerID)
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if err := c.post(bg, url, triggerID); err != nil {
			c.logger.Warn("async clue failed",
				log.String("trigger_id", triggerID),
				log.String("url", url),
				log.Err(err),
			)
		}
	}()

	c.logger.Debug("clue dispatched",
		log.String("trigger_id", triggerID),
		log.String("url", url),
		log.Bool("async", true),
	)
	return nil
}

// Fire triggers the named clue without waiting for the result.
func (c *Client) Fire(clueName string) {
	_ = c.Execute(context.Background(), clueName, true)
}

func (c *Client) post(ctx context.Context, url, triggerID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the body is not used.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	c.logger.Debug("clue executed",
		log.String("trigger_id", triggerID),
		log.String("url", url),
		log.Int("status", resp.StatusCode),
		log.Duration("elapsed", time.Since(start)),
	)
	return nil
}
