package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

type memoryStore struct {
	mu        sync.Mutex
	records   map[string]domain.SeenStatus
	writes    []string
	failWrite error
	failRead  error
}

func newMemoryStore(seen ...string) *memoryStore {
	s := &memoryStore{records: make(map[string]domain.SeenStatus)}
	for _, u := range seen {
		s.records[u] = domain.StatusSuccess
	}
	return s
}

func (s *memoryStore) Contains(_ context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failRead != nil {
		return false, s.failRead
	}
	_, ok := s.records[url]
	return ok, nil
}

func (s *memoryStore) Record(_ context.Context, url string, status domain.SeenStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite != nil {
		return s.failWrite
	}
	s.records[url] = status
	s.writes = append(s.writes, url)
	return nil
}

func (s *memoryStore) Close() error { return nil }

func (s *memoryStore) status(url string) (domain.SeenStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.records[url]
	return st, ok
}

type fakeFetcher struct {
	pages map[string]domain.FetchedArticle
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (domain.FetchedArticle, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return domain.FetchedArticle{}, err
	}
	page, ok := f.pages[url]
	if !ok {
		return domain.FetchedArticle{}, fmt.Errorf("%w: not found", domain.ErrFetch)
	}
	return page, nil
}

type fakeShortener struct {
	fail bool
}

func (s fakeShortener) Shorten(_ context.Context, url string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("%w: down", domain.ErrShorten)
	}
	return "https://tinyurl.com/" + fmt.Sprintf("%08d", len(url)), nil
}

type recordedPost struct {
	Text   string
	Parent string
}

type fakePoster struct {
	mu     sync.Mutex
	posts  []recordedPost
	failOn map[int]bool
	calls  int
	nextID int
}

func (p *fakePoster) CreatePost(ctx context.Context, text string) (string, error) {
	return p.create(ctx, text, "")
}

func (p *fakePoster) CreateReply(ctx context.Context, text, parentID string) (string, error) {
	return p.create(ctx, text, parentID)
}

func (p *fakePoster) create(_ context.Context, text, parent string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	call := p.calls
	p.calls++
	if p.failOn[call] {
		return "", errors.New("rate limited")
	}
	p.nextID++
	id := fmt.Sprintf("id-%d", p.nextID)
	p.posts = append(p.posts, recordedPost{Text: text, Parent: parent})
	return id, nil
}

type fakeComposer struct {
	topics    []string
	topicsErr error
	posts     []domain.PostUnit
	threadErr error
	digest    string
}

func (c *fakeComposer) GenerateTopics(context.Context, string, int) ([]string, error) {
	return c.topics, c.topicsErr
}

func (c *fakeComposer) ComposeThread(_ context.Context, _ string, digest string) ([]domain.PostUnit, error) {
	c.digest = digest
	return c.posts, c.threadErr
}

type fakeSource struct {
	results map[string][]domain.NewsItem
	errs    map[string]error
	queries []ports.Query
}

func (s *fakeSource) Search(_ context.Context, q ports.Query) ([]domain.NewsItem, error) {
	s.queries = append(s.queries, q)
	if err, ok := s.errs[q.Topic]; ok {
		return nil, err
	}
	return s.results[q.Topic], nil
}

type staticTopics []string

func (t staticTopics) Topics(context.Context) ([]string, error) {
	if len(t) == 0 {
		return nil, domain.ErrNoTopics
	}
	return t, nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) PublishDigest(_ context.Context, digest string) error {
	n.messages = append(n.messages, digest)
	return n.err
}

func noWait(context.Context, time.Duration) error { return nil }
