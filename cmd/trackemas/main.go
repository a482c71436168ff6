package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	memorycache "github.com/masfaiz-code/track-emas-api/internal/adapters/cache/memory"
	rediscache "github.com/masfaiz-code/track-emas-api/internal/adapters/cache/redis"
	"github.com/masfaiz-code/track-emas-api/internal/adapters/source/galeri24"
	"github.com/masfaiz-code/track-emas-api/internal/adapters/storage/postgresql"
	"github.com/masfaiz-code/track-emas-api/internal/adapters/web"
	"github.com/masfaiz-code/track-emas-api/internal/application/ports"
	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
	"github.com/masfaiz-code/track-emas-api/internal/config"
	"github.com/masfaiz-code/track-emas-api/internal/logger"
)

func main() {
	var (
		port = flag.Int("port", 0, "Port number (overrides PORT)")
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if *port != 0 {
		cfg.Port = *port
	}

	log := logger.New(cfg.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize cache
	var cache ports.SnapshotCache
	if cfg.Cache.Backend == "redis" {
		redisCache, err := rediscache.New(cfg.Redis)
		if err != nil {
			log.Error("Failed to initialize Redis cache", "error", err)
			os.Exit(1)
		}
		cache = redisCache
	} else {
		cache = memorycache.New()
	}
	defer cache.Close()

	// Initialize the optional history store. Without it the
	// history/trend endpoints answer 503 while acquisition keeps
	// working.
	var store ports.HistoryStore
	if cfg.DatabaseURL != "" {
		s, err := postgresql.New(cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		store = s
		defer store.Close()
	} else {
		log.Warn("DATABASE_URL not set, history and trend endpoints disabled")
	}

	// Initialize source and use cases
	source := galeri24.NewClient(cfg.SourceURL, cfg.FetchTimeout)
	priceUseCase := usecases.NewPriceUseCase(source, cache, cfg.Cache.TTL, log)
	historyUseCase := usecases.NewHistoryUseCase(priceUseCase, store, cfg.RetentionDays, log)

	// Initialize web server
	webServer := web.NewServer(cfg.Port, priceUseCase, historyUseCase, log)

	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("Failed to start web server", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	log.Info("Shutting down gracefully...")
	webServer.Shutdown(context.Background())
	log.Info("Shutdown complete")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  trackemas [--port <N>]")
	fmt.Println("  trackemas --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N     Port number")
}
