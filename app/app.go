package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"tv-alert-relay/api"
	"tv-alert-relay/cache"
	"tv-alert-relay/card"
	"tv-alert-relay/config"
	"tv-alert-relay/database"
	"tv-alert-relay/notifications"
	"tv-alert-relay/realtime"
)

// App represents the main application
type App struct {
	config     *config.Config
	db         *database.Database
	redis      *cache.RedisClient
	repo       *database.AlertRepository
	entries    cache.EntryCache
	composer   *notifications.Composer
	dispatcher *notifications.Dispatcher
	broker     *realtime.Broker
	renderer   *card.Renderer
	apiServer  *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{config: cfg}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Optional database connection for alert/delivery history
	if a.config.PersistenceEnabled() {
		fmt.Println("🗄️  Connecting to database...")
		db, err := database.Connect(
			a.config.DatabaseHost,
			a.config.DatabasePort,
			a.config.DatabaseName,
			a.config.DatabaseUser,
			a.config.DatabasePassword,
		)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		a.db = db

		a.repo = database.NewAlertRepository(a.db)
		if err := a.repo.InitSchema(); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
	} else {
		log.Println("ℹ️  DB_HOST not set, alert history disabled")
	}

	// 2. Optional Redis connection for the shared entry price cache
	if a.config.EntryCacheBackend == "redis" {
		fmt.Println("🧠 Connecting to Redis...")
		redisClient := cache.NewRedisClient(
			a.config.RedisHost,
			a.config.RedisPort,
			a.config.RedisPassword,
		)
		if redisClient == nil {
			fmt.Println("⚠️  Redis connection failed. Falling back to in-memory entry cache.")
		} else {
			a.redis = redisClient
		}
	}

	entryTTL := time.Duration(a.config.EntryCacheTTLHours) * time.Hour
	a.entries = cache.NewEntryCache(a.config.EntryCacheBackend, a.redis, entryTTL)

	// 3. Message pipeline
	a.composer = notifications.NewComposer(a.entries)
	a.dispatcher = notifications.NewDispatcher(
		notifications.NewDingTalkChannel(a.config.Channels),
		notifications.NewKookChannel(a.config.Channels),
		notifications.NewDiscordChannel(a.config.Channels),
	)

	// 4. Realtime broker for SSE and WebSocket subscribers
	a.broker = realtime.NewBroker()
	go a.broker.Run()

	// 5. Trade card renderer
	renderer, err := card.NewRenderer(a.config.Card)
	if err != nil {
		return fmt.Errorf("card renderer initialization failed: %w", err)
	}
	a.renderer = renderer

	// 6. Start API server
	a.apiServer = api.NewServer(a.config, a.composer, a.dispatcher, a.entries, a.broker, a.renderer, a.repo)
	go func() {
		if err := a.apiServer.Start(a.config.HTTPPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	// 7. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown()
}

// gracefulShutdown handles graceful shutdown with timeout
func (a *App) gracefulShutdown() error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt
	fmt.Println("\n🛑 Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	shutdownComplete := make(chan struct{})
	go func() {
		if a.db != nil {
			if err := a.db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			} else {
				fmt.Println("✅ Database connection closed")
			}
		}

		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			} else {
				fmt.Println("✅ Redis connection closed")
			}
		}

		close(shutdownComplete)
	}()

	select {
	case <-shutdownComplete:
		fmt.Println("✅ Graceful shutdown completed")
		return nil
	case <-shutdownCtx.Done():
		fmt.Println("⚠️  Shutdown timeout exceeded, forcing exit")
		return fmt.Errorf("shutdown timeout")
	}
}
