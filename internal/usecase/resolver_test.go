package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"NewsThreader/internal/domain"
)

func TestResolveClassifiesAndRecordsEveryItem(t *testing.T) {
	t.Parallel()

	store := newMemoryStore("https://seen.example")
	fetcher := &fakeFetcher{
		pages: map[string]domain.FetchedArticle{
			"https://ok.example":    {Title: "Launch", Text: "Body text"},
			"https://blank.example": {Title: "Blank", Text: "   \n "},
		},
		errs: map[string]error{
			"https://down.example":  fmt.Errorf("%w: status 503", domain.ErrFetch),
			"https://empty.example": domain.ErrEmptyContent,
		},
	}
	resolver := NewResolver(ResolverDeps{Fetcher: fetcher, Store: store, Shortener: fakeShortener{}})

	items := []domain.CandidateItem{
		{URL: "https://seen.example", Label: "AI"},
		{URL: "https://down.example", Label: "AI"},
		{URL: "https://ok.example", Label: "AI, Chips"},
		{URL: "https://empty.example", Label: "AI"},
		{URL: "https://blank.example", Label: "AI"},
	}

	got, err := resolver.Resolve(context.Background(), items)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 resolved article, got %d", len(got))
	}
	article := got[0]
	if article.URL != "https://ok.example" || article.Label != "AI, Chips" || article.Title != "Launch" {
		t.Fatalf("unexpected article: %#v", article)
	}
	if !strings.HasPrefix(article.ShortURL, "https://tinyurl.com/") {
		t.Fatalf("expected a short url, got %q", article.ShortURL)
	}

	for _, c := range fetcher.calls {
		if c == "https://seen.example" {
			t.Fatalf("seen url was fetched again")
		}
	}
	if len(store.writes) != 4 {
		t.Fatalf("expected one write per processed item, got %v", store.writes)
	}

	want := map[string]domain.SeenStatus{
		"https://down.example":  domain.StatusError,
		"https://ok.example":    domain.StatusSuccess,
		"https://empty.example": domain.StatusEmpty,
		"https://blank.example": domain.StatusEmpty,
	}
	for url, status := range want {
		got, ok := store.status(url)
		if !ok || got != status {
			t.Fatalf("status for %s: got %q (recorded=%v), want %q", url, got, ok, status)
		}
	}
}

func TestResolveSecondPassFetchesNothing(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	fetcher := &fakeFetcher{errs: map[string]error{"https://down.example": domain.ErrFetch}}
	resolver := NewResolver(ResolverDeps{Fetcher: fetcher, Store: store})

	items := []domain.CandidateItem{{URL: "https://down.example"}}
	if _, err := resolver.Resolve(context.Background(), items); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if _, err := resolver.Resolve(context.Background(), items); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(fetcher.calls) != 1 {
		t.Fatalf("failed url should never be retried, fetched %d times", len(fetcher.calls))
	}
}

func TestResolveStopsOnStoreWriteFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.failWrite = errors.New("disk full")
	fetcher := &fakeFetcher{pages: map[string]domain.FetchedArticle{
		"https://a.example": {Text: "a"},
		"https://b.example": {Text: "b"},
	}}
	resolver := NewResolver(ResolverDeps{Fetcher: fetcher, Store: store})

	_, err := resolver.Resolve(context.Background(), []domain.CandidateItem{
		{URL: "https://a.example"}, {URL: "https://b.example"},
	})
	if !errors.Is(err, domain.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if len(fetcher.calls) != 1 {
		t.Fatalf("walk should stop after the failed write, fetched %v", fetcher.calls)
	}
}

func TestResolveFallsBackToLongURL(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[string]domain.FetchedArticle{"https://a.example": {Text: "a"}}}
	resolver := NewResolver(ResolverDeps{Fetcher: fetcher, Store: newMemoryStore(), Shortener: fakeShortener{fail: true}})

	got, err := resolver.Resolve(context.Background(), []domain.CandidateItem{{URL: "https://a.example"}})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(got) != 1 || got[0].ShortURL != "https://a.example" {
		t.Fatalf("expected long url fallback, got %#v", got)
	}
}

func TestResolveMultiLineCheck(t *testing.T) {
	t.Parallel()

	check, err := ContentCheckByName("multiline")
	if err != nil {
		t.Fatalf("ContentCheckByName: %v", err)
	}
	store := newMemoryStore()
	fetcher := &fakeFetcher{pages: map[string]domain.FetchedArticle{
		"https://one.example": {Text: "only one line"},
		"https://two.example": {Text: "first\n\nsecond"},
	}}
	resolver := NewResolver(ResolverDeps{Fetcher: fetcher, Store: store, Check: check})

	got, err := resolver.Resolve(context.Background(), []domain.CandidateItem{
		{URL: "https://one.example"}, {URL: "https://two.example"},
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://two.example" {
		t.Fatalf("unexpected resolved set: %#v", got)
	}
	if st, _ := store.status("https://one.example"); st != domain.StatusEmpty {
		t.Fatalf("single-line article should be empty, got %q", st)
	}
}

func TestContentCheckByNameRejectsUnknown(t *testing.T) {
	t.Parallel()

	if _, err := ContentCheckByName("fuzzy"); err == nil {
		t.Fatal("expected error for unknown check")
	}
}
