package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"TrendsReporter/internal/config"
	"TrendsReporter/internal/infrastructure/export"
	"TrendsReporter/internal/infrastructure/llm"
	"TrendsReporter/internal/infrastructure/rssfeed"
	"TrendsReporter/internal/infrastructure/scheduler"
	"TrendsReporter/internal/infrastructure/scraper"
	"TrendsReporter/internal/infrastructure/storage"
	"TrendsReporter/internal/infrastructure/telegram"
	"TrendsReporter/internal/infrastructure/websearch"
	"TrendsReporter/internal/logging"
	"TrendsReporter/internal/metrics"
	"TrendsReporter/internal/ports"
	"TrendsReporter/internal/report"
	"TrendsReporter/internal/search"
	"TrendsReporter/internal/usecase"
)

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	db        *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	googleClient := websearch.NewClient(
		cfg.Search.BaseURL,
		cfg.Search.APIKey,
		cfg.Search.EngineID,
		cfg.Search.ResultsPerQuery,
		cfg.Search.DaysBack,
	)

	registry := search.NewRegistry()
	registry.Register(googleClient)
	if len(cfg.Feeds) > 0 {
		registry.Register(rssfeed.NewProvider(cfg.Feeds, logging.ForComponent(baseLogger, "provider.rss")))
	}

	source := search.NewSource(registry, cfg.Categories, logging.ForComponent(baseLogger, "source"))

	app := &Application{cfg: cfg, logger: baseLogger}

	var repository ports.CurationRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db
		repository = storage.NewPostgresRepository(db)
	}

	var narrator ports.Narrator
	if cfg.ChatGPT.APIKey != "" {
		narrator = llm.NewChatGPTClient(cfg.ChatGPT)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var metricSet *metrics.Set
	if cfg.Metrics.Addr != "" {
		promRegistry := prometheus.NewRegistry()
		metricSet = metrics.New(promRegistry)
		go serveMetrics(cfg.Metrics.Addr, promRegistry, baseLogger)
	}

	app.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Siblings:   googleClient,
		Repository: repository,
		Extractor:  scraper.NewExtractor(),
		Narrator:   narrator,
		Notifier:   notifier,
		Exporter:   export.NewWriter(cfg.Report.OutputDir),
		Renderer:   report.NewRenderer(cfg.Report.Title),
		Metrics:    metricSet,
		Options:    cfg.Curation.Options(),
		DaysBack:   cfg.Report.DaysBack,
		Logger:     logging.ForComponent(baseLogger, "pipeline"),
	})

	if cfg.Scheduler.Interval > 0 {
		driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval)
		app.scheduler = usecase.NewScheduler(driver, app.pipeline)
	}

	return app, nil
}

// Run executes a single report run, or starts the scheduler and blocks
// until the context is cancelled when an interval is configured.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if a.scheduler == nil {
		now := time.Now().In(a.cfg.Scheduler.Location())
		return a.pipeline.ProcessRun(ctx, now)
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "err", err)
		}
	}
}

func serveMetrics(addr string, registry *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", "err", err)
	}
}
