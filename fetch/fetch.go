// Package fetch retrieves the raw source CSV over HTTP and keeps a local
// cache so a network outage degrades provenance instead of failing the run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/profvolz/gasspeicher/logger"
)

// Provenance values reported alongside the fetched text.
const (
	ModeNetwork = "network"
	ModeCache   = "cache"
)

// Client fetches one configured URL and caches the last good body at
// CachePath.
type Client struct {
	URL        string
	CachePath  string
	HTTPClient *http.Client
}

// NewClient builds a client with a bounded request timeout.
func NewClient(url, cachePath string, timeout time.Duration) *Client {
	return &Client{
		URL:       url,
		CachePath: cachePath,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the source body. On success the body is written to the
// cache and provenance is "network". On any download failure the last cached
// body is returned with provenance "cache" and a warning. With no usable
// cache the failure is fatal.
func (c *Client) Fetch(ctx context.Context) (string, string, error) {
	body, err := c.download(ctx)
	if err == nil {
		if werr := c.writeCache(body); werr != nil {
			logger.WithComponent("fetch").WithError(werr).Warn("could not update cache file")
		}
		return body, ModeNetwork, nil
	}

	cached, rerr := os.ReadFile(c.CachePath)
	if rerr == nil {
		logger.WithComponent("fetch").WithError(err).Warn("network fetch failed, using cache")
		return string(cached), ModeCache, nil
	}

	return "", "", fmt.Errorf("fetch %s and no cache exists at %s: %w", c.URL, c.CachePath, err)
}

func (c *Client) download(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) writeCache(body string) error {
	if err := os.MkdirAll(filepath.Dir(c.CachePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.CachePath, []byte(body), 0o644)
}
