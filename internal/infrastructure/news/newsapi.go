package news

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
	"NewsThreader/internal/provider"
)

const (
	newsAPIBaseURL = "https://newsapi.org/v2/everything"
	userAgent      = "NewsThreader/1.0"
)

// NewsAPI searches newsapi.org's "everything" endpoint.
type NewsAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
	policy  *bluemonday.Policy
	now     func() time.Time
}

var _ provider.Provider = (*NewsAPI)(nil)

// NewNewsAPI builds a client; an empty baseURL targets newsapi.org.
func NewNewsAPI(client *http.Client, baseURL, apiKey string) *NewsAPI {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if baseURL == "" {
		baseURL = newsAPIBaseURL
	}
	return &NewsAPI{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
		policy:  bluemonday.StrictPolicy(),
		now:     time.Now,
	}
}

// Name identifies the strategy inside the registry.
func (n *NewsAPI) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// Search queries the API. Country is not supported by this endpoint and is ignored.
func (n *NewsAPI) Search(ctx context.Context, q ports.Query) ([]domain.NewsItem, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi key is not configured")
	}

	endpoint, err := n.searchURL(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi %q: %w", q.Topic, err)
	}
	defer resp.Body.Close()

	var payload newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response (%s): %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusOK || payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s %s", resp.Status, payload.Code, payload.Message)
	}

	items := make([]domain.NewsItem, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		if article.URL == "" {
			continue
		}
		items = append(items, domain.NewsItem{
			URL:         article.URL,
			Title:       strings.TrimSpace(article.Title),
			Description: strings.TrimSpace(html.UnescapeString(n.policy.Sanitize(article.Description))),
			Source:      article.Source.Name,
			PublishedAt: article.PublishedAt,
		})
	}
	return items, nil
}

func (n *NewsAPI) searchURL(q ports.Query) (string, error) {
	parsed, err := url.Parse(n.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid newsapi url %s: %w", n.baseURL, err)
	}

	query := parsed.Query()
	query.Set("q", q.Topic)
	query.Set("language", strings.ToLower(orDefault(q.Language, "en")))
	query.Set("sortBy", "publishedAt")
	if q.MaxResults > 0 {
		query.Set("pageSize", strconv.Itoa(q.MaxResults))
	}
	if q.Period > 0 {
		query.Set("from", n.now().Add(-q.Period).UTC().Format(time.RFC3339))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
