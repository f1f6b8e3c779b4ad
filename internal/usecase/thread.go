package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// NoPostsMessage is the report returned when nothing was published.
const NoPostsMessage = "No tweets posted"

// PostState tracks one text through the sequencer.
type PostState string

const (
	StatePending PostState = "pending"
	StatePosted  PostState = "posted"
	StateFailed  PostState = "failed"
)

// PostResult is the outcome of submitting one text.
type PostResult struct {
	Text     string
	ID       string
	ParentID string
	State    PostState
	Err      error
}

// ThreadDeps wires the thread publisher.
type ThreadDeps struct {
	Poster ports.Poster
	Fitter PostFitter
	Pace   time.Duration
	Logger *slog.Logger
}

// Thread publishes a sequence of posts as a reply chain.
type Thread struct {
	poster ports.Poster
	fitter PostFitter
	pace   time.Duration
	wait   func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

// NewThread constructs the publisher.
func NewThread(deps ThreadDeps) *Thread {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Thread{
		poster: deps.Poster,
		fitter: deps.Fitter,
		pace:   deps.Pace,
		wait:   sleep,
		logger: logger,
	}
}

// PostAll fits the units and posts them in order, returning a readable log.
func (t *Thread) PostAll(ctx context.Context, posts []domain.PostUnit) string {
	return Report(t.Publish(ctx, t.fitter.Fit(posts)))
}

// Publish posts already-fitted texts. The first success becomes the root;
// every later text replies to the most recent success. Failures are logged
// and skipped without moving the reply cursor.
func (t *Thread) Publish(ctx context.Context, texts []string) []PostResult {
	results := make([]PostResult, len(texts))
	for i := range texts {
		results[i] = PostResult{Text: HardFit(texts[i]), State: StatePending}
	}
	if t.poster == nil {
		t.logger.Error("poster is not configured")
		return results
	}

	var parent string
	for i := range results {
		if i > 0 && t.pace > 0 {
			if err := t.wait(ctx, t.pace); err != nil {
				t.logger.Warn("thread interrupted", "posted", countPosted(results), "error", err)
				break
			}
		}

		res := &results[i]
		res.ParentID = parent
		id, err := t.submit(ctx, res.Text, parent)
		if err != nil {
			res.State = StateFailed
			res.Err = fmt.Errorf("%w: %w", domain.ErrPost, err)
			t.logger.Warn("failed to post tweet", "index", i, "error", err)
			continue
		}
		res.ID = id
		res.State = StatePosted
		parent = id
		t.logger.Info("tweet posted", "index", i, "id", id, "length", runeLen(res.Text))
	}
	return results
}

func (t *Thread) submit(ctx context.Context, text, parent string) (string, error) {
	if parent == "" {
		return t.poster.CreatePost(ctx, text)
	}
	return t.poster.CreateReply(ctx, text, parent)
}

// Report renders the posted texts with their lengths.
func Report(results []PostResult) string {
	var b strings.Builder
	for _, res := range results {
		if res.State != StatePosted {
			continue
		}
		fmt.Fprintf(&b, "Tweet: %s\nLength: %d\n\n", res.Text, runeLen(res.Text))
	}
	if b.Len() == 0 {
		return NoPostsMessage
	}
	return b.String()
}

func countPosted(results []PostResult) int {
	n := 0
	for _, res := range results {
		if res.State == StatePosted {
			n++
		}
	}
	return n
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
