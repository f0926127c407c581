package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"galatide/cache"
	"galatide/config"
	"galatide/handlers"
	"galatide/messaging"
	"galatide/middleware"
	"galatide/repositories"
	"galatide/services"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply the schema and exit")
	seedPath := flag.String("seed", "", "apply a YAML seed file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.NewDatabase(cfg.Database, logger)
	if cfg.Database.AutoMigrate || *migrateOnly {
		db.OnConnect = repositories.Migrate
	}
	defer db.Close()

	languageRepo := repositories.NewLanguageRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	translationRepo := repositories.NewTranslationRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	userRepo := repositories.NewUserRepository(db)
	txManager := repositories.NewTransactionManager(db)

	if *migrateOnly || *seedPath != "" {
		if err := db.Connect(ctx); err != nil {
			logger.Error("database unavailable", "error", err)
			os.Exit(1)
		}
	}
	if *migrateOnly {
		logger.Info("schema applied")
		return
	}

	sitemapCache := newCache(ctx, cfg.Cache, logger)
	defer sitemapCache.Close()

	publisher := messaging.Multi{services.NewSitemapInvalidator(sitemapCache)}
	if cfg.Events.AMQPURL != "" {
		rabbit, err := messaging.NewRabbitMQ(messaging.Config{
			URL:        cfg.Events.AMQPURL,
			Exchange:   cfg.Events.Exchange,
			RoutingKey: cfg.Events.RoutingKey,
			QueueName:  cfg.Events.Queue,
		}, logger)
		if err != nil {
			logger.Warn("content events will not reach rabbitmq", "error", err)
		} else {
			defer rabbit.Close()
			publisher = append(publisher, rabbit)
		}
	}

	languageService := services.NewLanguageService(languageRepo, txManager, publisher, cfg.Site.DefaultLanguage, logger)
	tagService := services.NewTagService(tagRepo, languageRepo)
	articleService := services.NewArticleService(articleRepo, translationRepo, tagRepo, languageRepo, userRepo, txManager, publisher, logger)
	translationService := services.NewTranslationService(articleRepo, translationRepo, languageRepo, publisher, logger)
	resolver := services.NewContentResolver(languageRepo, articleRepo, translationRepo, cfg.Site.DefaultLanguage)
	metadataService := services.NewMetadataService(resolver, translationRepo, cfg.Site, logger)
	sitemapService := services.NewSitemapService(languageRepo, articleRepo, translationRepo, sitemapCache, cfg.Site, logger)

	if *seedPath != "" {
		seed, err := config.LoadSeed(*seedPath)
		if err != nil {
			logger.Error("invalid seed file", "path", *seedPath, "error", err)
			os.Exit(1)
		}
		seeder := services.NewSeedService(languageRepo, userRepo, tagRepo, languageService, tagService, logger)
		if _, err := seeder.Seed(ctx, seed); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
		return
	}

	router := handlers.NewRouter(handlers.RouterOptions{
		Languages:    languageService,
		Articles:     articleService,
		Translations: translationService,
		Tags:         tagService,
		Resolver:     resolver,
		Metadata:     metadataService,
		Sitemaps:     sitemapService,
		Store:        db,
		JWTSecret:    cfg.Auth.JWTSecret,
		RateLimiter:  middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Logger:       logger,
	})

	// The database is reached lazily; a failed first attempt only degrades
	// the public pages until the cooldown lets a request retry.
	if err := db.Connect(ctx); err != nil {
		logger.Warn("starting without database", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// newCache prefers redis and falls back to an in-process cache.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cache.Cache {
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.TTL,
		})
		if err == nil {
			return redisCache
		}
		logger.Warn("redis unavailable, using in-memory sitemap cache", "error", err)
	}
	return cache.NewMemoryCache(cfg.TTL, time.Minute)
}
