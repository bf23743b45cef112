package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grade-analytics/app/loader"
	repoRedis "grade-analytics/app/repository/redis"
	"grade-analytics/config"
	"grade-analytics/database"
	FiberApp "grade-analytics/fiber"
	"grade-analytics/route"
)

func main() {
	// 1. Load .env & config
	config.LoadEnv()
	cfg := config.Load()
	config.SetupLogger(cfg)

	// 2. Connect to databases
	database.ConnectPostgres(cfg.DatabaseURL)
	defer database.PostgresDB.Close()

	database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	defer database.DisconnectMongo()

	// Redis opsional
	database.ConnectRedis(cfg.RedisAddr)
	var cache loader.Cache
	if database.RDB != nil {
		cache = repoRedis.NewDatasetCache(database.RDB, cfg.CacheTTL)
		defer database.RDB.Close()
	}

	// 3. Setup Fiber App
	app := FiberApp.SetupFiber(cfg.BodyLimitMB)

	// 4. Setup Route
	route.SetupRoutes(app, route.Deps{
		Postgres:  database.PostgresDB,
		Mongo:     database.MongoDB,
		Cache:     cache,
		UploadDir: cfg.UploadDir,
	})

	// 5. Start server
	go func() {
		slog.Info("Server running", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}
