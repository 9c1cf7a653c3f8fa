// Package netclient builds the HTTP client used for interpreter index and
// download fetches. The builder captures connectivity mode and TLS trust
// policy up front so callers never construct ad hoc clients at call sites.
package netclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Connectivity controls whether the client may reach the network at all.
type Connectivity int

const (
	// Online permits network requests.
	Online Connectivity = iota
	// Offline refuses every request before dialing.
	Offline
)

// String returns the connectivity mode name.
func (c Connectivity) String() string {
	if c == Offline {
		return "offline"
	}
	return "online"
}

// ErrOffline is returned for any request made through an offline client.
var ErrOffline = errors.New("network requests are disabled in offline mode")

// DefaultTimeout bounds a single request round trip.
const DefaultTimeout = 30 * time.Second

// Builder configures and produces a Client.
type Builder struct {
	connectivity Connectivity
	nativeTLS    bool
	timeout      time.Duration
}

// NewBuilder returns a Builder with online connectivity and default TLS
// verification.
func NewBuilder() *Builder {
	return &Builder{timeout: DefaultTimeout}
}

// Connectivity sets the connectivity mode.
func (b *Builder) Connectivity(c Connectivity) *Builder {
	b.connectivity = c
	return b
}

// NativeTLS toggles verification against the platform certificate store
// instead of Go's default roots.
func (b *Builder) NativeTLS(enabled bool) *Builder {
	b.nativeTLS = enabled
	return b
}

// Timeout overrides the per-request timeout.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// Build produces the configured client.
func (b *Builder) Build() (*Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if b.nativeTLS {
		pool, err := x509.SystemCertPool()
		if err != nil {
			return nil, fmt.Errorf("loading system certificate pool: %w", err)
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	return &Client{
		connectivity: b.connectivity,
		http: &http.Client{
			Transport: transport,
			Timeout:   b.timeout,
		},
	}, nil
}

// Client is an HTTP client that honors the configured connectivity mode.
type Client struct {
	connectivity Connectivity
	http         *http.Client
}

// Connectivity returns the client's connectivity mode.
func (c *Client) Connectivity() Connectivity {
	return c.connectivity
}

// Get issues a GET request, failing with ErrOffline before dialing when the
// client is offline.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if c.connectivity == Offline {
		return nil, fmt.Errorf("GET %s: %w", url, ErrOffline)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	return resp, nil
}
