package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_shop/internal/catalog"
	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/events"
	h "github.com/fjod/go_shop/internal/http"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/fjod/go_shop/internal/notify"
	"github.com/fjod/go_shop/internal/shop"
	"github.com/fjod/go_shop/pkg/circuitbreaker"
	"github.com/fjod/go_shop/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("shop exited with error", zap.Error(err))
	}
	log.Info("server exited")
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()
	otel.SetTextMapPropagator(propagation.TraceContext{})

	source, closeSource, err := openCatalog(cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	store, closeStore, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	notices := notify.NewCenter(cfg.NotificationTTL)
	defer notices.Close()

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewBreakerPublisher(
			events.NewKafkaPublisher(cfg.CheckoutTopic, cfg.KafkaBrokers...),
			circuitbreaker.New[struct{}](circuitbreaker.Settings{Name: "checkout-events"}, log),
		)
		log.Info("publishing checkout events",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.CheckoutTopic),
		)
	}
	defer publisher.Close()

	status := domain.ShopStatusOpen
	if !cfg.ShopOpen {
		status = domain.ShopStatusClosed
	}
	svc := shop.NewService(
		catalog.NewService(source),
		store,
		notices,
		publisher,
		shop.Info{
			Name:          cfg.ShopName,
			Tagline:       cfg.Tagline,
			Status:        status,
			EngineVersion: cfg.EngineVersion,
			PluginVersion: cfg.PluginVersion,
		},
		log,
	)

	defaultLocale, ok := locale.Lookup(cfg.Locale)
	if !ok {
		log.Warn("unsupported default locale, using en", zap.String("locale", cfg.Locale))
		defaultLocale = locale.English
	}

	router := h.NewRouter(svc, h.RouterConfig{
		RequestTimeout: cfg.RequestTimeout,
		SessionTTL:     cfg.SessionTTL,
		DefaultLocale:  defaultLocale,
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "shop"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("shop starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

func openCatalog(cfg config.Config, log *zap.Logger) (catalog.Source, func(), error) {
	switch cfg.CatalogSource {
	case config.CatalogSQLite:
		src, err := catalog.NewSQLSource(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog db: %w", err)
		}
		if err := src.RunMigrations(); err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("migrate catalog db: %w", err)
		}
		log.Info("catalog loaded from sqlite", zap.String("path", cfg.DBPath))
		return src, closer(src, log), nil
	case config.CatalogFile:
		log.Info("catalog loaded from file", zap.String("path", cfg.CatalogFile))
		return catalog.NewFileSource(cfg.CatalogFile), func() {}, nil
	default:
		return catalog.NewStaticSource(), func() {}, nil
	}
}

func openSessionStore(ctx context.Context, cfg config.Config, log *zap.Logger) (shop.Store, func(), error) {
	if cfg.SessionStore != config.StoreRedis {
		store := shop.NewMemoryStore(cfg.SessionTTL)
		return store, closer(store, log), nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	return shop.NewRedisStore(redisClient, cfg.SessionTTL), closer(redisClient, log), nil
}

func closer(c io.Closer, log *zap.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn("close failed", zap.Error(err))
		}
	}
}
