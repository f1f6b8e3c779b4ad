package shortener

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"NewsThreader/internal/domain"
)

func TestTinyURLShorten(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://example.com/a?b=c" {
			t.Errorf("unexpected url param %q", got)
		}
		_, _ = w.Write([]byte("https://tinyurl.com/abcd1234\n"))
	}))
	defer srv.Close()

	short, err := NewTinyURL(srv.Client(), srv.URL).Shorten(context.Background(), "https://example.com/a?b=c")
	if err != nil {
		t.Fatalf("Shorten returned error: %v", err)
	}
	if short != "https://tinyurl.com/abcd1234" {
		t.Fatalf("unexpected short url %q", short)
	}
}

func TestTinyURLFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "server error", status: http.StatusInternalServerError, payload: "Error"},
		{name: "non url body", status: http.StatusOK, payload: "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			_, err := NewTinyURL(srv.Client(), srv.URL).Shorten(context.Background(), "https://example.com")
			if !errors.Is(err, domain.ErrShorten) {
				t.Fatalf("expected ErrShorten, got %v", err)
			}
		})
	}
}
