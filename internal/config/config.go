package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "America/New_York"
	configPathEnv   = "NEWS_THREADER_CONFIG"
)

// Release selects credentials and whether anything is really posted.
type Release string

const (
	ReleaseDev  Release = "dev"
	ReleaseTest Release = "test"
	ReleaseProd Release = "prod"
)

// Config holds high-level settings required across the application.
type Config struct {
	Release       Release            `yaml:"release"`
	Logging       LoggingConfig      `yaml:"logging"`
	Topics        TopicsConfig       `yaml:"topics"`
	News          NewsConfig         `yaml:"news"`
	Resolver      ResolverConfig     `yaml:"resolver"`
	Storage       StorageConfig      `yaml:"storage"`
	LLM           LLMConfig          `yaml:"llm"`
	Twitter       TwitterConfig      `yaml:"twitter"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
}

// LoggingConfig sets the slog level (debug, info, warn, error) and format (text, json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TopicsConfig decides where the topics of a run come from.
type TopicsConfig struct {
	Keyword      string `yaml:"keyword"`
	AutoGenerate bool   `yaml:"autoGenerate"`
	Count        int    `yaml:"count"`
	File         string `yaml:"file"`
}

// NewsConfig groups settings for the news provider.
type NewsConfig struct {
	Provider     string        `yaml:"provider"`
	ArticleCount int           `yaml:"articleCount"`
	Language     string        `yaml:"language"`
	Country      string        `yaml:"country"`
	Period       time.Duration `yaml:"period"`
	NewsAPIKey   string        `yaml:"newsApiKey"`
	BaseURL      string        `yaml:"baseUrl"`
}

// ResolverConfig tunes article resolution.
type ResolverConfig struct {
	ContentCheck string `yaml:"contentCheck"`
}

// StorageConfig selects the seen-URL store backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// LLMConfig defines how to contact the language model.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"apiKey"`
	Temperature float32 `yaml:"temperature"`
}

// TwitterCredentials are OAuth 1.0a user-context keys for one account.
type TwitterCredentials struct {
	APIKey       string `yaml:"apiKey"`
	APIKeySecret string `yaml:"apiKeySecret"`
	AccessToken  string `yaml:"accessToken"`
	AccessSecret string `yaml:"accessSecret"`
}

// TwitterConfig configures thread fitting and posting.
type TwitterConfig struct {
	Prod          TwitterCredentials `yaml:"prod"`
	Test          TwitterCredentials `yaml:"test"`
	Pace          time.Duration      `yaml:"pace"`
	SourcePattern string             `yaml:"sourcePattern"`
	MissingSource string             `yaml:"missingSource"`
	Intro         bool               `yaml:"intro"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines how often the pipeline runs.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	if loc, err := time.LoadLocation(defaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Credentials returns the account matching the release mode.
func (c Config) Credentials() TwitterCredentials {
	if c.Release == ReleaseProd {
		return c.Twitter.Prod
	}
	return c.Twitter.Test
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg := defaultConfig()
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()
	cfg.Release = Release(strings.ToLower(strings.TrimSpace(string(cfg.Release))))

	return cfg
}

// Validate reports settings that make a run impossible.
func (c Config) Validate() error {
	var errs []error

	switch c.Release {
	case ReleaseDev, ReleaseTest, ReleaseProd:
	default:
		errs = append(errs, fmt.Errorf("release must be dev, test or prod, got %q", c.Release))
	}

	if c.Topics.AutoGenerate {
		if strings.TrimSpace(c.Topics.Keyword) == "" {
			errs = append(errs, errors.New("topics.keyword is required when autoGenerate is on"))
		}
		if c.Topics.Count <= 0 {
			errs = append(errs, errors.New("topics.count must be positive"))
		}
	} else if strings.TrimSpace(c.Topics.File) == "" {
		errs = append(errs, errors.New("topics.file is required when autoGenerate is off"))
	}

	if c.News.ArticleCount <= 0 {
		errs = append(errs, errors.New("news.articleCount must be positive"))
	}

	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for sqlite"))
		}
	case "postgres":
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm.apiKey is required"))
	}

	if c.Release != ReleaseDev {
		creds := c.Credentials()
		if creds.APIKey == "" || creds.APIKeySecret == "" || creds.AccessToken == "" || creds.AccessSecret == "" {
			errs = append(errs, fmt.Errorf("twitter credentials for release %s are incomplete", c.Release))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.Format, "LOG_FORMAT")
	if v := os.Getenv("RELEASE"); v != "" {
		c.Release = Release(v)
	}

	setString(&c.Topics.Keyword, "KEYWORD")
	setInt(&c.Topics.Count, "KEYWORD_COUNT")
	setBool(&c.Topics.AutoGenerate, "AUTO_GENERATE_KEYWORDS")
	setString(&c.Topics.File, "TOPICS_FILE")

	setString(&c.News.Provider, "NEWS_PROVIDER")
	setInt(&c.News.ArticleCount, "ARTICLE_COUNT")
	setString(&c.News.Country, "NEWS_COUNTRY")
	setString(&c.News.Language, "NEWS_LANGUAGE")
	setDuration(&c.News.Period, "NEWS_PERIOD")
	setString(&c.News.NewsAPIKey, "NEWS_API_KEY")
	setString(&c.News.BaseURL, "NEWS_BASE_URL")

	setString(&c.Storage.Driver, "SEEN_STORE_DRIVER")
	setString(&c.Storage.Path, "SEEN_STORE_PATH")
	setString(&c.Storage.DSN, "DATABASE_DSN")

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "GROQ_MODEL_NAME")
	setString(&c.LLM.APIKey, "GROQ_API_KEY")
	setString(&c.LLM.BaseURL, "GROQ_API_BASE")
	if c.LLM.Provider == "gemini" {
		setString(&c.LLM.APIKey, "GEMINI_API_KEY")
		setString(&c.LLM.Model, "GEMINI_MODEL")
	}

	setString(&c.Twitter.Prod.APIKey, "X_API_KEY")
	setString(&c.Twitter.Prod.APIKeySecret, "X_API_KEY_SECRET")
	setString(&c.Twitter.Prod.AccessToken, "X_ACCESS_TOKEN")
	setString(&c.Twitter.Prod.AccessSecret, "X_ACCESS_SECRET")
	setString(&c.Twitter.Test.APIKey, "X_API_KEY_TEST")
	setString(&c.Twitter.Test.APIKeySecret, "X_API_KEY_SECRET_TEST")
	setString(&c.Twitter.Test.AccessToken, "X_ACCESS_TOKEN_TEST")
	setString(&c.Twitter.Test.AccessSecret, "X_ACCESS_SECRET_TEST")

	setString(&c.Notifications.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Notifications.Telegram.ChatID, "TELEGRAM_CHAT_ID")

	setDuration(&c.Scheduler.Interval, "SCHEDULE_INTERVAL")
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to UTC", tz)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func setInt(dst *int, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: %s=%q is not a number, ignoring", env, v)
		return
	}
	*dst = n
}

func setBool(dst *bool, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: %s=%q is not a boolean, ignoring", env, v)
		return
	}
	*dst = b
}

func setDuration(dst *time.Duration, env string) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: %s=%q is not a duration, ignoring", env, v)
		return
	}
	*dst = d
}

func defaultConfig() Config {
	return Config{
		Release: ReleaseDev,
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Topics: TopicsConfig{
			Keyword: "AI",
			Count:   5,
			File:    "topics.csv",
		},
		News: NewsConfig{
			Provider:     "googlenews",
			ArticleCount: 5,
			Language:     "en",
			Country:      "US",
			Period:       time.Hour,
		},
		Resolver: ResolverConfig{ContentCheck: "nonempty"},
		Storage:  StorageConfig{Driver: "sqlite", Path: ".cache/seen.db"},
		LLM: LLMConfig{
			Provider: "openai",
			BaseURL:  "https://api.groq.com/openai/v1",
			Model:    "llama-3.3-70b-versatile",
		},
		Twitter: TwitterConfig{
			Pace:          time.Second,
			MissingSource: "drop",
		},
		Scheduler: SchedulerConfig{Interval: time.Hour, Timezone: defaultTimezone},
	}
}
