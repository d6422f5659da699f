package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/codemonkeylabs/graffiti-extensions/internal/api/handlers"
	"github.com/codemonkeylabs/graffiti-extensions/internal/cache"
	"github.com/codemonkeylabs/graffiti-extensions/internal/clients"
	"github.com/codemonkeylabs/graffiti-extensions/internal/common/metrics"
	"github.com/codemonkeylabs/graffiti-extensions/internal/common/middleware"
	"github.com/codemonkeylabs/graffiti-extensions/internal/config"
	"github.com/codemonkeylabs/graffiti-extensions/internal/database"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/errors"
	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/repositories"
	"github.com/codemonkeylabs/graffiti-extensions/internal/host"
	hostkafka "github.com/codemonkeylabs/graffiti-extensions/internal/host/kafka"
	infrarepo "github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories"
	"github.com/codemonkeylabs/graffiti-extensions/internal/infrastructure/repositories/memory"
	"github.com/codemonkeylabs/graffiti-extensions/internal/notify"
	"github.com/codemonkeylabs/graffiti-extensions/internal/outputcache"
	"github.com/codemonkeylabs/graffiti-extensions/internal/scheduler"
	"github.com/codemonkeylabs/graffiti-extensions/internal/sitemap"
	"github.com/codemonkeylabs/graffiti-extensions/internal/widgets"
	"github.com/codemonkeylabs/graffiti-extensions/pkg"
	"github.com/codemonkeylabs/graffiti-extensions/pkg/txs"
)

func gracefulShutdown(
	ctx context.Context,
	server *http.Server,
	metricsServer *metrics.MetricsServer,
	feedScheduler *scheduler.FeedScheduler,
	commitConsumer *hostkafka.Consumer,
	stopCh <-chan struct{},
	appLogger *slog.Logger,
) {
	<-stopCh
	appLogger.Info("Shutdown signal received")

	feedScheduler.Stop()

	if commitConsumer != nil {
		if err := commitConsumer.Close(); err != nil {
			appLogger.Error("Failed to close commit consumer",
				"error", err,
			)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down HTTP server",
			"error", err,
		)
	}

	if err := metricsServer.Stop(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down metrics server",
			"error", err,
		)
	}

	appLogger.Info("Server stopped")
}

func startHTTPServer(_ context.Context, server *http.Server, port int, stopCh chan<- struct{}, appLogger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLogger.Info("System signal received",
			"signal", sig.String(),
		)
		close(stopCh)
	}()

	go func() {
		appLogger.Info("Starting HTTP server",
			"port", port,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start HTTP server",
				"error", err,
			)
			close(stopCh)
		}
	}()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start service: %v\n", err)
		os.Exit(1)
	}
}

// seedTwitterSettings copies configured Twitter credentials into the settings
// store so the notifier picks them up at construction. Validation against the
// live API stays in SetValues; startup must not depend on Twitter being up.
func seedTwitterSettings(ctx context.Context, settings host.Settings, cfg *config.Config) error {
	if strings.TrimSpace(cfg.TwitterUsername) == "" {
		return nil
	}

	values := map[string]string{
		notify.SettingUsername: strings.TrimSpace(cfg.TwitterUsername),
		notify.SettingPassword: strings.TrimSpace(cfg.TwitterPassword),
		notify.SettingTitle:    strings.TrimSpace(cfg.TwitterTitle),
	}

	for key, value := range values {
		if err := settings.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to store setting %s: %w", key, err)
		}
	}

	return nil
}

//nolint:funlen // Sequential wiring of every extension keeps the startup order readable.
func run() error {
	appLogger := pkg.NewLogger(os.Stdout)

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var versionRepo repositories.VersionRepository

	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresDB(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to database",
				"error", err,
			)

			return fmt.Errorf("failed to connect to database: %w", err)
		}

		defer db.Close()

		txManager := txs.NewTxManager(db.Pool, appLogger)

		repoFactory := infrarepo.NewFactory(db, txManager, cfg, appLogger)

		versionRepo, err = repoFactory.CreateVersionRepository()
		if err != nil {
			appLogger.Error("Failed to create version repository",
				"error", err,
			)

			return err
		}
	} else {
		appLogger.Info("No database configured, using in-memory version history")

		versionRepo = memory.NewVersionRepository()
	}

	postRepo := memory.NewPostRepository()

	app := host.NewApplication(versionRepo, appLogger)

	settings := host.NewMemorySettings()

	if err := seedTwitterSettings(ctx, settings, cfg); err != nil {
		appLogger.Error("Failed to store Twitter settings",
			"error", err,
		)

		return err
	}

	var shortener clients.URLShortener = clients.NewIsGdClient(cfg.ShortenerBaseURL, cfg, appLogger)

	if cfg.RedisURL != "" {
		cachingShortener, err := cache.NewCachingShortener(
			cfg.RedisURL,
			cfg.RedisPassword,
			cfg.RedisDB,
			cfg.RedisCacheTTL,
			shortener,
			appLogger,
		)
		if err != nil {
			appLogger.Error("Failed to connect to Redis for URL cache",
				"error", err,
			)

			appLogger.Warn("Continuing without URL cache")
		} else {
			shortener = cachingShortener
		}
	}

	defaultStrategy, err := notify.NewDefaultStrategy(cfg.SiteBaseURL)
	if err != nil {
		appLogger.Error("Failed to create formatting strategy",
			"error", err,
		)

		return err
	}

	chain := notify.NewChain(
		defaultStrategy,
		notify.NewShrinkURLStrategy(defaultStrategy, shortener),
	)

	twitterClient := clients.NewTwitterClient(cfg.TwitterBaseURL, cfg, appLogger)

	twitterNotify := notify.NewTwitterNotify(chain, versionRepo, twitterClient, settings, appLogger)
	twitterNotify.Init(app)

	smugMugClient := clients.NewSmugMugClient(cfg.SmugMugBaseURL, cfg, appLogger)

	smugMugWidget := widgets.NewSmugMugWidget(
		smugMugClient,
		cfg.SmugMugNickname,
		cfg.SmugMugItemsToDisplay,
		appLogger,
	)

	feedScheduler := scheduler.NewFeedScheduler(smugMugWidget, cfg.SmugMugRefreshInterval, appLogger)
	feedScheduler.Start()

	sitemapGenerator, err := sitemap.NewGenerator(postRepo, cfg.SiteBaseURL, cfg.SitemapIncludeUncategorized)
	if err != nil {
		appLogger.Error("Failed to create sitemap generator",
			"error", err,
		)

		return err
	}

	openSearch, err := sitemap.NewOpenSearch(cfg.OpenSearchName, cfg.OpenSearchDescription, cfg.SiteBaseURL)
	if err != nil {
		appLogger.Error("Failed to create search descriptor",
			"error", err,
		)

		return err
	}

	app.OnRenderHTMLHeader(func(context.Context) string {
		return openSearch.HeaderLink()
	})

	xmlHandler := handlers.NewXMLHandler(sitemapGenerator, openSearch, appLogger)

	mux := http.NewServeMux()
	xmlHandler.Register(mux)

	rateLimiter := middleware.NewRateLimiterMiddleware(
		ctx,
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		appLogger,
	)

	cachePolicy := outputcache.NewPolicy(30 * time.Second)

	handler := rateLimiter.Handler(cachePolicy.Handler(mux))

	var commitConsumer *hostkafka.Consumer

	switch {
	case strings.EqualFold(cfg.CommitTransport, "INPROC"):
	case strings.EqualFold(cfg.CommitTransport, "KAFKA"):
		commitConsumer = hostkafka.NewConsumer(
			strings.Split(cfg.KafkaBrokers, ","),
			cfg.KafkaGroupID,
			cfg.TopicCommits,
			cfg.TopicCommitsDLQ,
			app,
			appLogger,
		)
		commitConsumer.Start(ctx)
	default:
		appLogger.Error("Unknown commit transport",
			"transport", cfg.CommitTransport,
		)

		return &errors.ErrUnknownCommitTransport{Transport: cfg.CommitTransport}
	}

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, appLogger)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Failed to start metrics server",
				"error", err,
			)
		}
	}()

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCh := make(chan struct{})

	startHTTPServer(ctx, httpServer, cfg.ServerPort, stopCh, appLogger)

	gracefulShutdown(ctx, httpServer, metricsServer, feedScheduler, commitConsumer, stopCh, appLogger)

	return nil
}
