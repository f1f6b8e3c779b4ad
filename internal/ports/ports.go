package ports

import (
	"context"
	"time"

	"NewsThreader/internal/domain"
)

// Query describes one news search.
type Query struct {
	Topic      string
	MaxResults int
	Language   string
	Country    string
	Period     time.Duration
}

// NewsSource searches an upstream provider for recent articles on a topic.
type NewsSource interface {
	Search(ctx context.Context, q Query) ([]domain.NewsItem, error)
}

// ArticleFetcher downloads a page and extracts its title and body text.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (domain.FetchedArticle, error)
}

// URLShortener produces display links for tweets.
type URLShortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}

// SeenStore remembers every URL that was ever resolved, whatever the outcome.
type SeenStore interface {
	Contains(ctx context.Context, url string) (bool, error)
	Record(ctx context.Context, url string, status domain.SeenStatus) error
	Close() error
}

// Composer is the LLM side of the pipeline.
type Composer interface {
	GenerateTopics(ctx context.Context, keyword string, count int) ([]string, error)
	ComposeThread(ctx context.Context, keyword, digest string) ([]domain.PostUnit, error)
}

// Poster submits posts to the social platform.
type Poster interface {
	CreatePost(ctx context.Context, text string) (string, error)
	CreateReply(ctx context.Context, text, parentID string) (string, error)
}

// Notifier streams run reports to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

// TopicSource yields the topics to search for in one run.
type TopicSource interface {
	Topics(ctx context.Context) ([]string, error)
}
