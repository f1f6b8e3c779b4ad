package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsThreader/internal/domain"
	"NewsThreader/internal/ports"
)

// SearchSettings holds the per-topic query parameters.
type SearchSettings struct {
	MaxResults int
	Language   string
	Country    string
	Period     time.Duration
}

// IntroSettings controls the optional header tweet.
type IntroSettings struct {
	Enabled  bool
	Location *time.Location
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Topics   ports.TopicSource
	Source   ports.NewsSource
	Resolver *Resolver
	Composer ports.Composer
	Thread   *Thread
	Notifier ports.Notifier
	Logger   *slog.Logger

	Keyword string
	Search  SearchSettings
	Intro   IntroSettings
}

// Pipeline implements one topic → news → thread run.
type Pipeline struct {
	topics   ports.TopicSource
	source   ports.NewsSource
	resolver *Resolver
	composer ports.Composer
	thread   *Thread
	notifier ports.Notifier
	logger   *slog.Logger

	keyword string
	search  SearchSettings
	intro   IntroSettings
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		topics:   deps.Topics,
		source:   deps.Source,
		resolver: deps.Resolver,
		composer: deps.Composer,
		thread:   deps.Thread,
		notifier: deps.Notifier,
		logger:   logger,
		keyword:  deps.Keyword,
		search:   deps.Search,
		intro:    deps.Intro,
	}
}

// Run selects topics, collects and resolves fresh articles, composes a
// thread and posts it. It returns the posting report.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (string, error) {
	if p.topics == nil || p.source == nil || p.resolver == nil || p.composer == nil || p.thread == nil {
		return "", fmt.Errorf("pipeline is not fully configured")
	}

	topics, err := p.topics.Topics(ctx)
	if err != nil {
		return "", fmt.Errorf("select topics: %w", err)
	}
	if len(topics) == 0 {
		return "", domain.ErrNoTopics
	}

	candidates := p.collect(ctx, topics)
	if len(candidates) == 0 {
		return "", fmt.Errorf("search %d topics: %w", len(topics), domain.ErrNoArticles)
	}

	articles, err := p.resolver.Resolve(ctx, Deduplicate(candidates))
	if err != nil {
		return "", fmt.Errorf("resolve articles: %w", err)
	}
	if len(articles) == 0 {
		return "", fmt.Errorf("resolve %d candidates: %w", len(candidates), domain.ErrNoArticles)
	}

	digest := FormatDigest(articles)
	p.logger.Debug("digest built", "articles", len(articles), "chars", runeLen(digest))

	posts, err := p.composer.ComposeThread(ctx, p.keyword, digest)
	if err != nil {
		return "", fmt.Errorf("compose thread: %w", err)
	}

	texts := p.thread.fitter.Fit(posts)
	if p.intro.Enabled && len(texts) > 0 {
		intro := IntroPost(p.keyword, p.search.Period, now, p.intro.Location)
		texts = append([]string{intro}, texts...)
	}

	report := Report(p.thread.Publish(ctx, texts))
	p.logger.Info("thread finished", "proposed", len(posts), "submitted", len(texts))

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, report); err != nil {
			p.logger.Warn("publish run report", "error", err)
		}
	}
	return report, nil
}

func (p *Pipeline) collect(ctx context.Context, topics []string) []domain.CandidateItem {
	var candidates []domain.CandidateItem
	for _, topic := range topics {
		p.logger.Info("fetching news on topic", "topic", topic)
		items, err := p.source.Search(ctx, ports.Query{
			Topic:      topic,
			MaxResults: p.search.MaxResults,
			Language:   p.search.Language,
			Country:    p.search.Country,
			Period:     p.search.Period,
		})
		if err != nil {
			p.logger.Warn("search failed", "topic", topic, "error", err)
			continue
		}
		for _, item := range items {
			if item.URL == "" {
				continue
			}
			candidates = append(candidates, domain.CandidateItem{URL: item.URL, Label: topic})
		}
	}
	p.logger.Info("candidates collected", "topics", len(topics), "urls", len(candidates))
	return candidates
}
