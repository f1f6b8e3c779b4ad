package domain

import "time"

// NewsItem is a raw search hit returned by a news provider.
type NewsItem struct {
	URL         string
	Title       string
	Description string
	Source      string
	PublishedAt time.Time
}

// CandidateItem is an article URL waiting for resolution, tagged with the
// topic (or merged topics) that produced it.
type CandidateItem struct {
	URL   string
	Label string
}

// SeenStatus is the outcome recorded for a resolved URL.
type SeenStatus string

const (
	StatusSuccess SeenStatus = "success"
	StatusEmpty   SeenStatus = "empty"
	StatusError   SeenStatus = "error"
)

// Valid reports whether the status is one of the known outcomes.
func (s SeenStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusEmpty, StatusError:
		return true
	}
	return false
}

// SeenRecord is one persisted resolution outcome.
type SeenRecord struct {
	URL        string
	Status     SeenStatus
	RecordedAt time.Time
}

// FetchedArticle is what an extractor pulls out of a page.
type FetchedArticle struct {
	Title string
	Text  string
}

// ResolvedArticle is a successfully extracted article ready for the digest.
type ResolvedArticle struct {
	URL      string
	Label    string
	Title    string
	Text     string
	ShortURL string
}

// DisplayURL returns the short link when one was produced.
func (a ResolvedArticle) DisplayURL() string {
	if a.ShortURL != "" {
		return a.ShortURL
	}
	return a.URL
}

// PostUnit is a single tweet proposed by the composer.
type PostUnit struct {
	Text      string
	SourceURL string
}

// PairPosts zips composer texts with their sources. Mismatched lists cannot
// be paired reliably, so every unit is left without a source.
func PairPosts(texts, sources []string) []PostUnit {
	units := make([]PostUnit, len(texts))
	paired := len(texts) == len(sources)
	for i, text := range texts {
		units[i].Text = text
		if paired {
			units[i].SourceURL = sources[i]
		}
	}
	return units
}
