package main

import (
	"context"
	"flag"
	"os"
	"time"

	"tinyviewers/proj/internal/api/tasks"
	"tinyviewers/proj/internal/config"
	"tinyviewers/proj/internal/lib/logger"
	"tinyviewers/proj/internal/services"
	"tinyviewers/proj/internal/storage/postgres"
	pgmodels "tinyviewers/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		panic(err)
	}
	defer storage.Conn.Close()
	log.Info("database connection established")

	bgTasks := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.MaxQueueSize)
	bgTasks.Run()

	app := NewApplication(cfg, log, services.New(log, cfg, pgmodels.New(storage), bgTasks))
	if err := app.serve(); err != nil {
		log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := bgTasks.Shutdown(shutdownCtx); err != nil {
		log.Error("background tasks shutdown failed", "reason", err.Error())
	}
}
