package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"taskdeck/internal/notify"
	"taskdeck/internal/server"
	"taskdeck/internal/storage/sqlite"
	"taskdeck/internal/util"
	"taskdeck/internal/workspace"
)

func main() {
	_ = godotenv.Load()

	addrFlag := flag.String("addr", util.EnvOrDefault("TASKDECK_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TASKDECK_DB_PATH", "data/taskdeck.db"), "Path to sqlite database file")
	secretFlag := flag.String("jwt-secret", util.EnvOrDefault("TASKDECK_JWT_SECRET", ""), "HMAC secret for access tokens")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *secretFlag == "" {
		logger.Error("TASKDECK_JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	svc := workspace.New(store, logger)

	hub := notify.NewHub(logger)
	go hub.Run()

	srv := server.New(svc, hub, logger, []byte(*secretFlag))

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
