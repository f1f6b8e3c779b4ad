package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// ContentCheck reports whether extracted text is usable.
type ContentCheck func(text string) bool

// NonEmpty accepts any text with a non-space character.
func NonEmpty(text string) bool {
	return strings.TrimSpace(text) != ""
}

// MultiLine accepts text with at least two non-blank lines.
func MultiLine(text string) bool {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++
		if lines > 1 {
			return true
		}
	}
	return false
}

// ContentCheckByName maps a configuration value to a predicate.
func ContentCheckByName(name string) (ContentCheck, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nonempty":
		return NonEmpty, nil
	case "multiline":
		return MultiLine, nil
	}
	return nil, fmt.Errorf("unknown content check %q", name)
}

// ResolverDeps wires the collaborators of the article resolver.
type ResolverDeps struct {
	Fetcher   ports.ArticleFetcher
	Store     ports.SeenStore
	Shortener ports.URLShortener
	Check     ContentCheck
	Logger    *slog.Logger
}

// Resolver fetches every not-yet-seen candidate at most once and records
// the outcome before moving on.
type Resolver struct {
	fetcher   ports.ArticleFetcher
	store     ports.SeenStore
	shortener ports.URLShortener
	check     ContentCheck
	logger    *slog.Logger
}

// NewResolver constructs the resolver; a nil Check defaults to NonEmpty.
func NewResolver(deps ResolverDeps) *Resolver {
	check := deps.Check
	if check == nil {
		check = NonEmpty
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		fetcher:   deps.Fetcher,
		store:     deps.Store,
		shortener: deps.Shortener,
		check:     check,
		logger:    logger,
	}
}

// Resolve walks items in order. Fetch and content failures are recorded and
// skipped; only a store failure stops the walk.
func (r *Resolver) Resolve(ctx context.Context, items []domain.CandidateItem) ([]domain.ResolvedArticle, error) {
	if r.fetcher == nil || r.store == nil {
		return nil, fmt.Errorf("resolver is not configured")
	}

	var resolved []domain.ResolvedArticle
	for _, item := range items {
		seen, err := r.store.Contains(ctx, item.URL)
		if err != nil {
			return resolved, fmt.Errorf("lookup %s: %w", item.URL, err)
		}
		if seen {
			r.logger.Debug("skip seen url", "url", item.URL)
			continue
		}

		fetched, err := r.fetcher.Fetch(ctx, item.URL)
		status := r.classify(fetched, err)
		if err := r.store.Record(ctx, item.URL, status); err != nil {
			return resolved, fmt.Errorf("record %s: %w", item.URL, errors.Join(domain.ErrStoreWrite, err))
		}

		switch status {
		case domain.StatusError:
			r.logger.Warn("read article failed", "url", item.URL, "error", err)
			continue
		case domain.StatusEmpty:
			r.logger.Info("article has no usable text", "url", item.URL)
			continue
		}

		resolved = append(resolved, domain.ResolvedArticle{
			URL:      item.URL,
			Label:    item.Label,
			Title:    fetched.Title,
			Text:     fetched.Text,
			ShortURL: r.shorten(ctx, item.URL),
		})
	}

	r.logger.Info("articles read", "candidates", len(items), "resolved", len(resolved))
	return resolved, nil
}

func (r *Resolver) classify(fetched domain.FetchedArticle, err error) domain.SeenStatus {
	switch {
	case errors.Is(err, domain.ErrEmptyContent):
		return domain.StatusEmpty
	case err != nil:
		return domain.StatusError
	case !r.check(fetched.Text):
		return domain.StatusEmpty
	}
	return domain.StatusSuccess
}

func (r *Resolver) shorten(ctx context.Context, url string) string {
	if r.shortener == nil {
		return url
	}
	short, err := r.shortener.Shorten(ctx, url)
	if err != nil || short == "" {
		r.logger.Warn("shorten url failed, using original", "url", url, "error", err)
		return url
	}
	return short
}
