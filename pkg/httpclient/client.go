package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	// WordPress blogs behind caching plugins tend to need this
	BrowserClient ClientType = "browser"

	// CloudflareClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// Cloudflare allows simple tools like curl but blocks browser-like User-Agents
	CloudflareClient ClientType = "cloudflare"

	// DefaultClient sends Go's default User-Agent
	DefaultClient ClientType = "default"
)

// DefaultTimeout bounds a single page fetch
const DefaultTimeout = 30 * time.Second

// maxRedirects is how many redirects are followed before the last response is returned
const maxRedirects = 10

// HTTPClient wraps an http.Client with configuration
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates a new HTTP client with the specified type and the default timeout
func NewClient(clientType ClientType) *HTTPClient {
	return NewClientWithTimeout(clientType, DefaultTimeout)
}

// NewClientWithTimeout creates a new HTTP client with the specified type and timeout.
// A timeout <= 0 disables it.
func NewClientWithTimeout(clientType ClientType, timeout time.Duration) *HTTPClient {
	if timeout < 0 {
		timeout = 0
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:     client,
		clientType: clientType,
	}
}

// ParseClientType validates a client type name coming from configuration.
// An empty name selects BrowserClient.
func ParseClientType(name string) (ClientType, error) {
	switch ClientType(name) {
	case "":
		return BrowserClient, nil
	case BrowserClient, CloudflareClient, DefaultClient:
		return ClientType(name), nil
	default:
		return "", fmt.Errorf("unknown client type %q", name)
	}
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// StdClient exposes the configured http.Client for libraries that take one
// (e.g. the feed parser), without the header profile.
func (c *HTTPClient) StdClient() *http.Client {
	return c.client
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case CloudflareClient:
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}
}
