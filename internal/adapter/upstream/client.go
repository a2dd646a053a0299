package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// Client forwards console requests to the logistics backend, attaching the
// opaque session credential. Its HTTP client should use the capture
// Transport so every proxied exchange lands in the record store.
type Client struct {
	base        *url.URL
	httpClient  *http.Client
	credentials domain.CredentialSource
	account     string
	cookieName  string
	refreshPath string
	logger      *slog.Logger
}

// NewClient parses the upstream base URL and returns a proxy client.
func NewClient(baseURL string, httpClient *http.Client, credentials domain.CredentialSource, account, cookieName, refreshPath string, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base:        base,
		httpClient:  httpClient,
		credentials: credentials,
		account:     account,
		cookieName:  cookieName,
		refreshPath: refreshPath,
		logger:      logger.With("component", "upstream_client"),
	}, nil
}

// Forward sends method+path+query+body to the upstream and returns the raw
// response. A 401 triggers one pass through the refresh path before the
// request is retried.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery string, body []byte, contentType string) (*http.Response, error) {
	cred, err := c.credentials.Credential(ctx, c.account)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upstream credential: %w", err)
	}

	resp, err := c.send(ctx, method, path, rawQuery, body, contentType, cred)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	resp.Body.Close()
	refreshed, err := c.refresh(ctx, cred)
	if err != nil {
		c.logger.Warn("credential refresh failed", "error", err)
		return c.send(ctx, method, path, rawQuery, body, contentType, cred)
	}
	return c.send(ctx, method, path, rawQuery, body, contentType, refreshed)
}

func (c *Client) send(ctx context.Context, method, path, rawQuery string, body []byte, contentType, cred string) (*http.Response, error) {
	target := *c.base
	target.Path = singleJoin(c.base.Path, path)
	target.RawQuery = rawQuery

	var reader io.Reader
	if len(body) > 0 {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cred != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: cred})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	return resp, nil
}

// refresh exchanges the current credential for a fresh one through the
// configured refresh endpoint.
func (c *Client) refresh(ctx context.Context, cred string) (string, error) {
	target := *c.base
	target.Path = singleJoin(c.base.Path, c.refreshPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), nil)
	if err != nil {
		return "", err
	}
	if cred != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: cred})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh endpoint returned %d", resp.StatusCode)
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == c.cookieName && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("refresh response carried no %s cookie", c.cookieName)
}

func singleJoin(a, b string) string {
	switch {
	case strings.HasSuffix(a, "/") && strings.HasPrefix(b, "/"):
		return a + b[1:]
	case !strings.HasSuffix(a, "/") && !strings.HasPrefix(b, "/") && a != "":
		return a + "/" + b
	default:
		return a + b
	}
}
