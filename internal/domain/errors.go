package domain

import "errors"

var (
	// ErrFetch marks a network or parse failure while resolving one URL.
	ErrFetch = errors.New("fetch article")
	// ErrEmptyContent marks a page that parsed but had no usable text.
	ErrEmptyContent = errors.New("empty article content")
	// ErrShorten marks a URL shortener failure; callers fall back to the long URL.
	ErrShorten = errors.New("shorten url")
	// ErrPost marks a single post that the transport rejected.
	ErrPost = errors.New("create post")
	// ErrStoreWrite marks a seen-store persistence failure. It is fatal.
	ErrStoreWrite = errors.New("seen store write")
	// ErrNoTopics is returned when no topic could be selected.
	ErrNoTopics = errors.New("no topics found")
	// ErrNoArticles is returned when the run produced nothing to summarize.
	ErrNoArticles = errors.New("no news articles found")
)
