package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"NewsThreader/internal/domain"
)

func TestGeneratedTopics(t *testing.T) {
	t.Parallel()

	src := GeneratedTopics{
		Composer: &fakeComposer{topics: []string{" LLM agents ", "", "Chips", "llm agents"}},
		Keyword:  "AI",
		Count:    3,
	}
	got, err := src.Topics(context.Background())
	if err != nil {
		t.Fatalf("Topics returned error: %v", err)
	}
	if want := []string{"LLM agents", "Chips"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected topics %q, want %q", got, want)
	}
}

func TestGeneratedTopicsEmpty(t *testing.T) {
	t.Parallel()

	src := GeneratedTopics{Composer: &fakeComposer{topics: []string{" ", ""}}, Keyword: "AI", Count: 3}
	if _, err := src.Topics(context.Background()); !errors.Is(err, domain.ErrNoTopics) {
		t.Fatalf("expected ErrNoTopics, got %v", err)
	}
}

func TestGeneratedTopicsComposerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := GeneratedTopics{Composer: &fakeComposer{topicsErr: boom}, Keyword: "AI", Count: 3}
	if _, err := src.Topics(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped composer error, got %v", err)
	}
}
