package news

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
	"NewsThreader/internal/provider"
)

const googleNewsBaseURL = "https://news.google.com/rss/search"

// GoogleNews searches the Google News RSS endpoint.
type GoogleNews struct {
	baseURL string
	parser  *gofeed.Parser
	policy  *bluemonday.Policy
	logger  *slog.Logger
}

var _ provider.Provider = (*GoogleNews)(nil)

// NewGoogleNews wires an HTTP client; an empty baseURL targets news.google.com.
func NewGoogleNews(client *http.Client, baseURL string, logger *slog.Logger) *GoogleNews {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if baseURL == "" {
		baseURL = googleNewsBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &GoogleNews{
		baseURL: baseURL,
		parser:  parser,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger,
	}
}

// Name identifies the strategy inside the registry.
func (g *GoogleNews) Name() string {
	return "googlenews"
}

// Search returns up to q.MaxResults items published within q.Period.
func (g *GoogleNews) Search(ctx context.Context, q ports.Query) ([]domain.NewsItem, error) {
	feedURL, err := g.searchURL(q)
	if err != nil {
		return nil, err
	}

	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("google news %q: %w", q.Topic, err)
	}

	items := make([]domain.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if q.MaxResults > 0 && len(items) >= q.MaxResults {
			break
		}
		if entry.Link == "" {
			continue
		}
		item := domain.NewsItem{
			URL:         DecodeGoogleNewsURL(entry.Link),
			Title:       strings.TrimSpace(entry.Title),
			Description: g.plain(entry.Description),
			Source:      g.Name(),
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}
		items = append(items, item)
	}

	g.logger.Debug("google news results", "topic", q.Topic, "count", len(items))
	return items, nil
}

func (g *GoogleNews) searchURL(q ports.Query) (string, error) {
	parsed, err := url.Parse(g.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid google news url %s: %w", g.baseURL, err)
	}

	term := q.Topic
	if when := whenOperator(q.Period); when != "" {
		term += " when:" + when
	}

	lang := strings.ToLower(orDefault(q.Language, "en"))
	country := strings.ToUpper(orDefault(q.Country, "US"))

	query := parsed.Query()
	query.Set("q", term)
	query.Set("hl", lang+"-"+country)
	query.Set("gl", country)
	query.Set("ceid", country+":"+lang)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// plain strips markup from feed descriptions.
func (g *GoogleNews) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(g.policy.Sanitize(s)))
}

// whenOperator renders a recency window the way Google News expects it (1h, 7d).
func whenOperator(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", (d+time.Hour-1)/time.Hour)
	}
	return "1h"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
