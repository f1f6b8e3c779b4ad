package shortener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

const tinyURLEndpoint = "https://tinyurl.com/api-create.php"

// TinyURL shortens links through TinyURL's plain-text endpoint.
type TinyURL struct {
	endpoint string
	client   *http.Client
}

var _ ports.URLShortener = (*TinyURL)(nil)

// NewTinyURL builds a shortener; the default client times out after 5s.
func NewTinyURL(client *http.Client, endpoint string) *TinyURL {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if endpoint == "" {
		endpoint = tinyURLEndpoint
	}
	return &TinyURL{endpoint: endpoint, client: client}
}

// Shorten returns the short link for long. Errors wrap domain.ErrShorten.
func (t *TinyURL) Shorten(ctx context.Context, long string) (string, error) {
	endpoint := t.endpoint + "?" + url.Values{"url": {long}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", domain.ErrShorten, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrShorten, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrShorten, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: tinyurl error %s: %s", domain.ErrShorten, resp.Status, strings.TrimSpace(string(body)))
	}

	short := strings.TrimSpace(string(body))
	if !strings.HasPrefix(short, "http") {
		return "", fmt.Errorf("%w: unexpected response %q", domain.ErrShorten, short)
	}
	return short, nil
}
