package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"TrendsReporter/internal/curation"
)

const (
	defaultTimezone  = "UTC"
	configPathEnv    = "TREND_REPORTER_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	searchAPIKeyEnv  = "GOOGLE_SEARCH_API_KEY"
	searchEngineEnv  = "GOOGLE_SEARCH_ENGINE_ID"
	chatGPTAPIKeyEnv = "CHATGPT_API_KEY"
	chatGPTModelEnv  = "CHATGPT_MODEL"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	telegramChatEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Search        SearchConfig       `yaml:"search"`
	Curation      CurationConfig     `yaml:"curation"`
	Report        ReportConfig       `yaml:"report"`
	Notifications NotificationConfig `yaml:"notifications"`
	ChatGPT       ChatGPTConfig      `yaml:"chatgpt"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Categories    []CategoryConfig   `yaml:"categories"`
	Feeds         []FeedConfig       `yaml:"feeds"`
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines how often report runs are triggered.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// UnmarshalYAML accepts the interval as a duration string ("24h",
// "168h"), which yaml.v3 does not decode into time.Duration on its own.
func (s *SchedulerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Interval string `yaml:"interval"`
		Timezone string `yaml:"timezone"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("parse scheduler interval: %w", err)
		}
		s.Interval = interval
	}
	s.Timezone = raw.Timezone
	return nil
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// SearchConfig wires the Google Custom Search JSON API client.
type SearchConfig struct {
	APIKey          string `yaml:"apiKey"`
	EngineID        string `yaml:"engineId"`
	BaseURL         string `yaml:"baseUrl"`
	ResultsPerQuery int    `yaml:"resultsPerQuery"`
	DaysBack        int    `yaml:"daysBack"`
}

// CurationConfig mirrors the curation pipeline options (§ report
// curation): identity-merge threshold, domain cap, score weights and
// URL pattern lists.
type CurationConfig struct {
	SimilarityThreshold float64  `yaml:"similarityThreshold"`
	PerDomainCap        int      `yaml:"perDomainCap"`
	EditorialWeight     float64  `yaml:"editorialWeight"`
	PopularityWeight    float64  `yaml:"popularityWeight"`
	QualityDomains      []string `yaml:"qualityDomains"`
	ArticlePathPatterns []string `yaml:"articlePathPatterns"`
	PoorPathPatterns    []string `yaml:"poorPathPatterns"`
	SourcesPerCategory  int      `yaml:"sourcesPerCategory"`
}

// Options converts the YAML view into curation.Options, filling any
// unset field from the package defaults.
func (c CurationConfig) Options() curation.Options {
	opts := curation.DefaultOptions()
	if c.SimilarityThreshold > 0 {
		opts.SimilarityThreshold = c.SimilarityThreshold
	}
	if c.PerDomainCap > 0 {
		opts.PerDomainCap = c.PerDomainCap
	}
	if c.EditorialWeight > 0 || c.PopularityWeight > 0 {
		opts.EditorialWeight = c.EditorialWeight
		opts.PopularityWeight = c.PopularityWeight
	}
	if len(c.QualityDomains) > 0 {
		opts.QualityDomains = c.QualityDomains
	}
	if len(c.ArticlePathPatterns) > 0 {
		opts.ArticlePathPatterns = c.ArticlePathPatterns
	}
	if len(c.PoorPathPatterns) > 0 {
		opts.PoorPathPatterns = c.PoorPathPatterns
	}
	if c.SourcesPerCategory > 0 {
		opts.SourcesPerCategory = c.SourcesPerCategory
	}
	return opts
}

// ReportConfig controls rendering and export of the markdown report.
type ReportConfig struct {
	Title     string `yaml:"title"`
	OutputDir string `yaml:"outputDir"`
	DaysBack  int    `yaml:"daysBack"`
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

// ChatGPTConfig defines how to contact the optional narrator API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// MetricsConfig enables the Prometheus listener when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// CategoryConfig describes one topic bucket and the queries issued
// for it. Provider selects the retrieval strategy by name.
type CategoryConfig struct {
	Name       string   `yaml:"name"`
	Provider   string   `yaml:"provider"`
	Queries    []string `yaml:"queries"`
	MaxResults int      `yaml:"maxResults"`
}

// FeedConfig points the RSS provider at one feed.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultConfig().Categories
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(searchAPIKeyEnv); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv(searchEngineEnv); v != "" {
		c.Search.EngineID = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Search.APIKey != "" {
		base.Search.APIKey = override.Search.APIKey
	}
	if override.Search.EngineID != "" {
		base.Search.EngineID = override.Search.EngineID
	}
	if override.Search.BaseURL != "" {
		base.Search.BaseURL = override.Search.BaseURL
	}
	if override.Search.ResultsPerQuery > 0 {
		base.Search.ResultsPerQuery = override.Search.ResultsPerQuery
	}
	if override.Search.DaysBack > 0 {
		base.Search.DaysBack = override.Search.DaysBack
	}

	base.Curation = mergeCuration(base.Curation, override.Curation)

	if override.Report.Title != "" {
		base.Report.Title = override.Report.Title
	}
	if override.Report.OutputDir != "" {
		base.Report.OutputDir = override.Report.OutputDir
	}
	if override.Report.DaysBack > 0 {
		base.Report.DaysBack = override.Report.DaysBack
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.Metrics.Addr != "" {
		base.Metrics = override.Metrics
	}

	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}
	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	return base
}

func mergeCuration(base, override CurationConfig) CurationConfig {
	if override.SimilarityThreshold > 0 {
		base.SimilarityThreshold = override.SimilarityThreshold
	}
	if override.PerDomainCap > 0 {
		base.PerDomainCap = override.PerDomainCap
	}
	if override.EditorialWeight > 0 || override.PopularityWeight > 0 {
		base.EditorialWeight = override.EditorialWeight
		base.PopularityWeight = override.PopularityWeight
	}
	if len(override.QualityDomains) > 0 {
		base.QualityDomains = override.QualityDomains
	}
	if len(override.ArticlePathPatterns) > 0 {
		base.ArticlePathPatterns = override.ArticlePathPatterns
	}
	if len(override.PoorPathPatterns) > 0 {
		base.PoorPathPatterns = override.PoorPathPatterns
	}
	if override.SourcesPerCategory > 0 {
		base.SourcesPerCategory = override.SourcesPerCategory
	}
	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:   LoggingConfig{Level: "info"},
		Database:  DatabaseConfig{DSN: ""},
		Scheduler: SchedulerConfig{Interval: 0, Timezone: defaultTimezone, location: tz},
		Search: SearchConfig{
			BaseURL:         "https://www.googleapis.com/customsearch/v1",
			ResultsPerQuery: 10,
			DaysBack:        14,
		},
		Curation: CurationConfig{},
		Report: ReportConfig{
			Title:     "Recent AI Trends and Advancements",
			OutputDir: "output",
			DaysBack:  14,
		},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You are an editor writing short narratives about AI news trends for developers.",
		},
		Categories: []CategoryConfig{
			{
				Name:     "research",
				Provider: "googlecse",
				Queries: []string{
					"AI model releases past 2 weeks announcement",
					"machine learning breakthroughs research",
				},
			},
			{
				Name:     "tools",
				Provider: "googlecse",
				Queries: []string{
					"AI developer tools released past 2 weeks",
					"new AI APIs SDKs launch",
				},
			},
			{
				Name:     "industry",
				Provider: "googlecse",
				Queries: []string{
					"AI partnerships announcements news",
					"AI funding investment news report",
				},
			},
		},
	}
}
