package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsThreader/internal/ports"
)

func TestNewsAPISearch(t *testing.T) {
	t.Parallel()

	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"name":"Reuters"},"title":" Chips rally ","description":"<b>Big</b> day","url":"https://publisher.example/a","publishedAt":"2024-03-05T14:00:00Z"},
			{"source":{"name":"Blog"},"title":"No link","url":""}
		]}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(srv.Client(), srv.URL, "secret")
	n.now = func() time.Time { return time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC) }

	items, err := n.Search(context.Background(), ports.Query{Topic: "AI", MaxResults: 3, Period: time.Hour})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotReq.Header.Get("X-Api-Key") != "secret" {
		t.Fatalf("api key header missing")
	}
	q := gotReq.URL.Query()
	if q.Get("q") != "AI" || q.Get("pageSize") != "3" || q.Get("from") != "2024-03-05T14:00:00Z" || q.Get("language") != "en" {
		t.Fatalf("unexpected query: %v", q)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Chips rally" || items[0].Description != "Big day" || items[0].Source != "Reuters" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestNewsAPIErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(srv.Client(), srv.URL, "wrong")
	if _, err := n.Search(context.Background(), ports.Query{Topic: "AI"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewsAPIRequiresKey(t *testing.T) {
	t.Parallel()

	n := NewNewsAPI(nil, "http://127.0.0.1:1", "")
	if _, err := n.Search(context.Background(), ports.Query{Topic: "AI"}); err == nil {
		t.Fatal("expected error without key")
	}
}
