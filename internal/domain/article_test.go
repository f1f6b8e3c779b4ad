package domain

import (
	"reflect"
	"testing"
)

func TestPairPosts(t *testing.T) {
	t.Parallel()

	got := PairPosts([]string{"a", "b"}, []string{"s1", "s2"})
	want := []PostUnit{{Text: "a", SourceURL: "s1"}, {Text: "b", SourceURL: "s2"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected units %+v", got)
	}

	got = PairPosts([]string{"a", "b"}, []string{"s1"})
	want = []PostUnit{{Text: "a"}, {Text: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatched lists should not be paired, got %+v", got)
	}
}

func TestSeenStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []SeenStatus{StatusSuccess, StatusEmpty, StatusError} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if SeenStatus("pending").Valid() {
		t.Fatal("unknown status reported valid")
	}
}

func TestDisplayURL(t *testing.T) {
	t.Parallel()

	if got := (ResolvedArticle{URL: "long"}).DisplayURL(); got != "long" {
		t.Fatalf("expected long url, got %q", got)
	}
	if got := (ResolvedArticle{URL: "long", ShortURL: "short"}).DisplayURL(); got != "short" {
		t.Fatalf("expected short url, got %q", got)
	}
}
