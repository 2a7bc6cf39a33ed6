package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrewpolewoy/kokodi/internal/auth"
	"github.com/andrewpolewoy/kokodi/internal/config"
	"github.com/andrewpolewoy/kokodi/internal/metrics"
	"github.com/andrewpolewoy/kokodi/internal/random"
	"github.com/andrewpolewoy/kokodi/internal/repository/postgres"
	"github.com/andrewpolewoy/kokodi/internal/service"
	"github.com/andrewpolewoy/kokodi/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.DB.DSN())
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("connected to database")

	metricsShutdown, err := metrics.Setup(ctx, "kokodi", cfg.OTLP)
	if err != nil {
		log.Error("setup metrics", "error", err)
		os.Exit(1)
	}
	defer metricsShutdown(context.Background())

	gameMetrics, err := metrics.NewGameMetrics()
	if err != nil {
		log.Error("create game metrics", "error", err)
		os.Exit(1)
	}

	seed, err := random.NewSeed()
	if err != nil {
		log.Error("generate random seed", "error", err)
		os.Exit(1)
	}

	users := postgres.NewUserRepository(db)
	games := postgres.NewGameRepository(db)

	tokens := auth.NewTokenProvider(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(users, tokens, log)
	gameService := service.NewGameService(games, users, random.NewSource(seed), gameMetrics, log)

	handlers := web.NewHandlers(authService, gameService, tokens, log)
	server := web.NewServer(":"+cfg.HTTPPort, handlers, db, log)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("received shutdown signal")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Shutdown)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", "error", err)
		}
	}()

	if err := server.Run(); err != nil && err != http.ErrServerClosed {
		log.Error("web server", "error", err)
		os.Exit(1)
	}

	log.Info("application stopped")
}
