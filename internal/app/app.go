package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"TrendPoster/internal/config"
	"TrendPoster/internal/dashboard"
	"TrendPoster/internal/domain"
	"TrendPoster/internal/infrastructure/llm"
	"TrendPoster/internal/infrastructure/providers"
	"TrendPoster/internal/infrastructure/scheduler"
	"TrendPoster/internal/infrastructure/storage"
	"TrendPoster/internal/logging"
	"TrendPoster/internal/ports"
	"TrendPoster/internal/publish"
	"TrendPoster/internal/server"
	"TrendPoster/internal/trends"
	"TrendPoster/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	api       *server.Server
	dashboard *dashboard.Server
	publisher *usecase.ScheduledPublisher
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var (
		db        *sql.DB
		trendRepo *storage.TrendRepository
		postRepo  *storage.PostRepository
	)
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		trendRepo = storage.NewTrendRepository(db)
		postRepo = storage.NewPostRepository(db)
	} else {
		baseLogger.Warn("no database configured, running without persistence")
	}

	registry := trends.NewRegistry()
	registry.Register(providers.NewGoogleTrends(nil, "", cfg.Trends.UserAgent))
	registry.Register(providers.NewRedditHot(nil, "", cfg.Trends.UserAgent, cfg.Trends.Subreddit, cfg.Trends.Limit))
	registry.Register(providers.NewHackerNews(nil, "", cfg.Trends.Limit))
	registry.Register(providers.NewTwitterTrends(cfg.Trends.TwitterAPIKey))
	registry.Register(providers.NewYouTubeTrending(cfg.Trends.YouTubeAPIKey))

	aggregator := trends.NewAggregator(registry, cfg.Trends.ProviderTimeout,
		baseLogger.With("component", "aggregator"))

	dispatcher := publish.NewDispatcher(publish.Options{},
		baseLogger.With("component", "dispatcher"))

	credentials := credentialsFromConfig(cfg.Platforms)
	generator := llm.NewOpenAIClient(cfg.OpenAI)

	trendService := usecase.NewTrendService(aggregator, repoOrNilTrends(trendRepo),
		baseLogger.With("component", "trends"))
	postService := usecase.NewPostService(usecase.PostServiceDeps{
		TrendRepo:   repoOrNilTrends(trendRepo),
		PostRepo:    repoOrNilPosts(postRepo),
		Generator:   generator,
		Dispatcher:  dispatcher,
		Credentials: credentials,
		Logger:      baseLogger.With("component", "posts"),
	})

	api := server.New(trendService, postService, cfg.Trends.Region,
		baseLogger.With("component", "api"))

	var dash *dashboard.Server
	if trendRepo != nil {
		dash = dashboard.New(trendRepo, baseLogger.With("component", "dashboard"))
	}

	publisher := usecase.NewScheduledPublisher(
		scheduler.NewIntervalScheduler(cfg.Scheduler.Interval), postService)

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		api:       api,
		dashboard: dash,
		publisher: publisher,
	}, nil
}

// Run starts the API, the dashboard, and the scheduled publisher, then
// blocks until the API listener fails or a shutdown signal arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.publisher.Start(ctx); err != nil {
		return fmt.Errorf("start scheduled publisher: %w", err)
	}
	defer func() { _ = a.publisher.Stop(context.Background()) }()

	if a.dashboard != nil {
		go func() {
			a.logger.Info("dashboard listening", "port", a.cfg.Server.DashboardPort)
			if err := a.dashboard.Run(a.cfg.Server.DashboardPort); err != nil {
				a.logger.Error("dashboard stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("api listening", "port", a.cfg.Server.Port)
		errCh <- a.api.Run(a.cfg.Server.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

func credentialsFromConfig(cfg config.PlatformConfig) domain.Credentials {
	return domain.Credentials{
		Facebook:  domain.TokenCredential{AccessToken: cfg.FacebookAccessToken},
		Instagram: domain.TokenCredential{AccessToken: cfg.InstagramAccessToken},
		Twitter: domain.TwitterCredential{
			APIKey:       cfg.TwitterAPIKey,
			APISecret:    cfg.TwitterAPISecret,
			AccessToken:  cfg.TwitterAccessToken,
			AccessSecret: cfg.TwitterAccessSecret,
		},
		Threads:   domain.TokenCredential{AccessToken: cfg.ThreadsAccessToken},
		YouTube:   domain.KeyCredential{APIKey: cfg.YouTubeAPIKey},
		Pinterest: domain.TokenCredential{AccessToken: cfg.PinterestAccessToken},
	}
}

// repoOrNilTrends avoids handing a typed-nil pointer to an interface field.
func repoOrNilTrends(repo *storage.TrendRepository) ports.TrendRepository {
	if repo == nil {
		return nil
	}
	return repo
}

func repoOrNilPosts(repo *storage.PostRepository) ports.PostRepository {
	if repo == nil {
		return nil
	}
	return repo
}
