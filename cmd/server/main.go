package main // Entry point package

import (
	"context" // context bounds the schema bootstrap
	"log"     // Logging library
	"time"    // time provides the bootstrap timeout

	"github.com/joho/godotenv"    // godotenv loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/home-inventory/internal/config"     // Internal config loader
	"github.com/iliyamo/home-inventory/internal/database"   // Internal database setup
	"github.com/iliyamo/home-inventory/internal/handler"    // Internal HTTP handlers
	"github.com/iliyamo/home-inventory/internal/middleware" // Internal middleware (cache, rate limit)
	"github.com/iliyamo/home-inventory/internal/queue"      // Internal change-event consumer
	"github.com/iliyamo/home-inventory/internal/repository" // Internal repositories
	"github.com/iliyamo/home-inventory/internal/router"     // Internal router setup
	"github.com/iliyamo/home-inventory/internal/storage"    // Internal file store
)

func main() {
	_ = godotenv.Load() // load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("database: %v", err)
	}
	cancel()

	store, err := storage.New(cfg.UploadsPath) // uploads root, created if absent
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	h := handler.NewInventoryHandler(
		repository.NewRoomRepo(db),
		repository.NewManualRepo(db),
		repository.NewApplianceRepo(db),
		repository.NewMaintenanceRepo(db),
		store,
		rdb,
		cacheCfg.Prefix,
	)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	e.Use(middleware.NewRedisCache(cacheCfg, rdb))
	router.RegisterRoutes(e)       // health check
	router.RegisterInventory(e, h) // record services

	// Consume change events in the background: cross-replica cache
	// invalidation plus the audit log.  Runs its own reconnect loop.
	go func() {
		if err := queue.StartChangeConsumer(rdb, cacheCfg.Prefix); err != nil {
			log.Printf("change consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
