package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pressly/goose"

	"github.com/lloydngcobo/PCO/internal/adapter/handler/http"
	"github.com/lloydngcobo/PCO/internal/adapter/logger"
	"github.com/lloydngcobo/PCO/internal/adapter/memory"
	"github.com/lloydngcobo/PCO/internal/adapter/pco"
	"github.com/lloydngcobo/PCO/internal/adapter/postgres"
	promadapter "github.com/lloydngcobo/PCO/internal/adapter/prometheus"
	redisbackend "github.com/lloydngcobo/PCO/internal/adapter/redis"
	"github.com/lloydngcobo/PCO/internal/cache"
	"github.com/lloydngcobo/PCO/internal/config"
	"github.com/lloydngcobo/PCO/internal/core/ports"
	"github.com/lloydngcobo/PCO/internal/core/services"
)

const janitorInterval = time.Minute

// @title PCO API Wrapper
// @version 1.0
// @description Caching wrapper around the Planning Center Online API

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cache backend, falling back to memory when the configured store
	// is unreachable. Startup must not abort on a cache outage.
	backend, backendType := selectBackend(ctx, cfg, loggerAdapter)
	loggerAdapter.Info("Cache backend selected", map[string]interface{}{
		"backend": backendType,
	})
	if mem, ok := backend.(*memory.MemoryBackend); ok {
		mem.StartJanitor(ctx, janitorInterval)
	}

	// Observability
	metrics := promadapter.NewPrometheusAdapter()

	// Cache manager
	cacheManager := cache.NewManager(backend, loggerAdapter, metrics)

	// Validate
	validate := validator.New()

	// Upstream client
	if cfg.PCO.AppID == "" || cfg.PCO.Secret == "" {
		log.Fatal("PCO_APP_ID and PCO_SECRET must be set")
	}
	pcoClient := pco.NewClient(cfg.PCO.AppID, cfg.PCO.Secret, cfg.PCO.BaseURL, loggerAdapter)

	// Services
	peopleService := services.NewPeopleService(pcoClient, cacheManager, loggerAdapter, validate)
	planService := services.NewPlanService(pcoClient, cacheManager, loggerAdapter)

	// Handlers
	tokenService := http.NewJWTTokenService(cfg.Token.Secret, cfg.Token.Duration, loggerAdapter)
	authHandler := http.NewAuthHandler(cfg.Token, tokenService, loggerAdapter, metrics)
	peopleHandler := http.NewPeopleHandler(peopleService, loggerAdapter, metrics)
	plansHandler := http.NewPlansHandler(planService, loggerAdapter, metrics)
	cacheHandler := http.NewCacheAdminHandler(cacheManager, backendType, loggerAdapter, metrics)

	// Init router
	router, err := http.NewRouter(
		cfg.HTTP,
		tokenService,
		peopleHandler,
		plansHandler,
		cacheHandler,
		authHandler,
	)
	if err != nil {
		log.Fatal("Error initializing router:", err)
	}

	go func() {
		listenAddr := fmt.Sprintf("%s:%s", cfg.HTTP.URL, cfg.HTTP.Port)
		loggerAdapter.Info("Starting the HTTP server", map[string]interface{}{
			"addr": listenAddr,
		})

		if err := router.Serve(listenAddr); err != nil {
			log.Fatal("Error starting the HTTP server:", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	loggerAdapter.Info("Application is running", nil)

	<-stop

	loggerAdapter.Info("Application stopped", nil)
}

func selectBackend(ctx context.Context, cfg *config.Container, log ports.LoggerPort) (ports.CacheBackend, string) {
	switch cfg.Cache.Type {
	case "redis":
		backend, err := redisbackend.NewRedisBackend(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("Failed to initialize Redis cache, falling back to in-memory", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address,
			})
			return memory.NewMemoryBackend(), "memory"
		}
		return backend, "redis"

	case "postgres":
		backend, err := postgres.NewPostgresBackend(ctx, cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
		if err == nil {
			err = goose.Up(backend.DB(), "./internal/adapter/postgres/migrations")
		}
		if err != nil {
			log.Warn("Failed to initialize Postgres cache, falling back to in-memory", map[string]interface{}{
				"error": err.Error(),
			})
			return memory.NewMemoryBackend(), "memory"
		}
		return backend, "postgres"

	default:
		return memory.NewMemoryBackend(), "memory"
	}
}
