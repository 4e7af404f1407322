package main

import (
	"context"
	"flag"
	"os"
	"time"

	"cinehall/proj/internal/api/tasks"
	"cinehall/proj/internal/config"
	"cinehall/proj/internal/lib/logger"
	"cinehall/proj/internal/services"
	"cinehall/proj/internal/services/stats"
	"cinehall/proj/internal/storage/postgres"
	storagemodels "cinehall/proj/internal/storage/postgres/models"
	"cinehall/proj/internal/storage/redis"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")

	var statsCache stats.Cache
	if cfg.Redis.Enabled {
		cache, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			panic(err)
		}
		defer cache.Close()
		statsCache = cache
		log.Info("redis connection established", "addr", cfg.Redis.Addr)
	}

	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	models := storagemodels.New(storage)
	app := NewApplication(cfg, log, services.New(log, cfg, models, statsCache, bgTasks))
	if err := app.serve(); err != nil {
		log.Error("server stopped", "reason", err.Error())
		os.Exit(1)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := bgTasks.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown failed", "reason", err.Error())
	}
}
