package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"NewsThreader/internal/config"
	"NewsThreader/internal/domain"
	"NewsThreader/internal/infrastructure/article"
	"NewsThreader/internal/infrastructure/llm"
	"NewsThreader/internal/infrastructure/news"
	"NewsThreader/internal/infrastructure/scheduler"
	"NewsThreader/internal/infrastructure/shortener"
	"NewsThreader/internal/infrastructure/storage"
	"NewsThreader/internal/infrastructure/telegram"
	"NewsThreader/internal/infrastructure/topics"
	"NewsThreader/internal/infrastructure/twitter"
	"NewsThreader/internal/logging"
	"NewsThreader/internal/ports"
	"NewsThreader/internal/provider"
	"NewsThreader/internal/usecase"
)

// Application wires configs to use cases and owns the lifecycle of every
// long-lived client (seen store, social session).
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *storage.SeenStore
	pipeline *usecase.Pipeline
}

// New validates cfg and builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	check, err := usecase.ContentCheckByName(cfg.Resolver.ContentCheck)
	if err != nil {
		return nil, err
	}
	policy, err := usecase.ParseMissingSourcePolicy(cfg.Twitter.MissingSource)
	if err != nil {
		return nil, err
	}
	pattern := usecase.DefaultSourcePattern
	if cfg.Twitter.SourcePattern != "" {
		if pattern, err = regexp.Compile(cfg.Twitter.SourcePattern); err != nil {
			return nil, fmt.Errorf("twitter.sourcePattern: %w", err)
		}
	}

	// news.baseUrl overrides the endpoint of the selected provider only.
	baseURL := func(name string) string {
		if cfg.News.Provider == name {
			return cfg.News.BaseURL
		}
		return ""
	}
	registry := provider.NewRegistry()
	registry.Register(news.NewGoogleNews(nil, baseURL("googlenews"), baseLogger.With("component", "news.googlenews")))
	registry.Register(news.NewNewsAPI(nil, baseURL("newsapi"), cfg.News.NewsAPIKey))
	source, err := registry.Resolve(cfg.News.Provider)
	if err != nil {
		return nil, err
	}

	composer, err := newComposer(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	poster, err := newPoster(cfg, baseLogger.With("component", "twitter"))
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	var topicSource ports.TopicSource = topics.NewFile(cfg.Topics.File)
	if cfg.Topics.AutoGenerate {
		topicSource = usecase.GeneratedTopics{Composer: composer, Keyword: cfg.Topics.Keyword, Count: cfg.Topics.Count}
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	resolver := usecase.NewResolver(usecase.ResolverDeps{
		Fetcher:   article.NewExtractor(nil, baseLogger.With("component", "article")),
		Store:     store,
		Shortener: shortener.NewTinyURL(nil, ""),
		Check:     check,
		Logger:    baseLogger.With("component", "resolver"),
	})

	thread := usecase.NewThread(usecase.ThreadDeps{
		Poster: poster,
		Fitter: usecase.PostFitter{Pattern: pattern, Policy: policy},
		Pace:   cfg.Twitter.Pace,
		Logger: baseLogger.With("component", "thread"),
	})

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Topics:   topicSource,
		Source:   source,
		Resolver: resolver,
		Composer: composer,
		Thread:   thread,
		Notifier: notifier,
		Logger:   baseLogger.With("component", "pipeline"),
		Keyword:  cfg.Topics.Keyword,
		Search: usecase.SearchSettings{
			MaxResults: cfg.News.ArticleCount,
			Language:   cfg.News.Language,
			Country:    cfg.News.Country,
			Period:     cfg.News.Period,
		},
		Intro: usecase.IntroSettings{
			Enabled:  cfg.Twitter.Intro,
			Location: cfg.Scheduler.Location(),
		},
	})

	return &Application{cfg: cfg, logger: baseLogger, store: store, pipeline: pipeline}, nil
}

// Run performs a single pipeline execution. Runs that find no topics or no
// fresh articles end cleanly.
func (a *Application) Run(ctx context.Context) error {
	now := time.Now().In(a.cfg.Scheduler.Location())
	report, err := a.pipeline.Run(ctx, now)
	if errors.Is(err, domain.ErrNoTopics) || errors.Is(err, domain.ErrNoArticles) {
		a.logger.Info("nothing to post", "reason", err)
		return nil
	}
	if err != nil {
		return err
	}
	a.logger.Info("run complete", "report", report)
	return nil
}

// Serve runs the pipeline on the configured interval until ctx is done.
func (a *Application) Serve(ctx context.Context) error {
	sched := usecase.NewScheduler(
		scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval),
		a.pipeline,
		a.logger.With("component", "scheduler"),
	)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "interval", a.cfg.Scheduler.Interval)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return sched.Stop(stopCtx)
}

// History returns the most recent seen-store records.
func (a *Application) History(ctx context.Context, limit int) ([]domain.SeenRecord, error) {
	return a.store.Records(ctx, limit)
}

// Close releases the seen store.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func newComposer(ctx context.Context, cfg config.LLMConfig) (ports.Composer, error) {
	if cfg.Provider == "gemini" {
		return llm.NewGeminiComposer(ctx, cfg)
	}
	return llm.NewOpenAIComposer(cfg), nil
}

func newPoster(cfg config.Config, logger *slog.Logger) (ports.Poster, error) {
	if cfg.Release == config.ReleaseDev {
		return twitter.NewDryRun(logger), nil
	}
	client, err := twitter.Connect(cfg.Credentials())
	if err != nil {
		return nil, err
	}
	logger.Info("client initialized", "release", cfg.Release)
	return client, nil
}

func openStore(ctx context.Context, cfg config.StorageConfig) (*storage.SeenStore, error) {
	if cfg.Driver == "postgres" {
		return storage.OpenPostgres(ctx, cfg.DSN)
	}
	return storage.OpenSQLite(ctx, cfg.Path)
}
