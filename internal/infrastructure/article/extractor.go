package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

const (
	maxBodyBytes = 10 << 20
	browserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// mainContent lists the containers tried when readability finds nothing.
const mainContent = "article, [role='main'], .main-content, #main-content, .post-content, .article-content, .entry-content"

// Extractor downloads a page and extracts the article with readability,
// falling back to the page's main container.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ArticleFetcher = (*Extractor)(nil)

// NewExtractor wires an HTTP client; nil gets a 30s timeout client.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{client: client, logger: logger}
}

// Fetch returns the title and body text of pageURL. Failures wrap
// domain.ErrFetch; a page without text wraps domain.ErrEmptyContent.
func (e *Extractor) Fetch(ctx context.Context, pageURL string) (domain.FetchedArticle, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" || !strings.HasPrefix(parsed.Scheme, "http") {
		return domain.FetchedArticle{}, fmt.Errorf("%w: invalid url %q", domain.ErrFetch, pageURL)
	}

	body, err := e.download(ctx, pageURL)
	if err != nil {
		return domain.FetchedArticle{}, fmt.Errorf("%w: %s: %w", domain.ErrFetch, pageURL, err)
	}

	var result domain.FetchedArticle
	if art, err := readability.FromReader(bytes.NewReader(body), parsed); err == nil {
		result.Title = strings.TrimSpace(art.Title)
		result.Text = strings.TrimSpace(art.TextContent)
	} else {
		e.logger.Debug("readability failed", "url", pageURL, "error", err)
	}

	if result.Text == "" || result.Title == "" {
		title, text, err := fallback(body)
		if err != nil {
			return domain.FetchedArticle{}, fmt.Errorf("%w: parse %s: %w", domain.ErrFetch, pageURL, err)
		}
		if result.Title == "" {
			result.Title = title
		}
		if result.Text == "" {
			result.Text = text
		}
	}

	if result.Text == "" {
		return result, fmt.Errorf("%s: %w", pageURL, domain.ErrEmptyContent)
	}
	return result, nil
}

func (e *Extractor) download(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", browserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "html") {
		return nil, fmt.Errorf("unsupported content type %s", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// fallback extracts paragraphs from the page's main container with goquery.
func fallback(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, nav, header, footer, iframe, noscript, aside").Remove()

	root := doc.Find(mainContent).First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var paragraphs []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.Join(strings.Fields(p.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		if text := strings.Join(strings.Fields(root.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return title, strings.Join(paragraphs, "\n"), nil
}
