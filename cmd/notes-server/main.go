package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notetaker/internal/server"
	"notetaker/internal/shared"
)

func main() {
	// Optional yaml config; env vars override it
	cfg, err := shared.LoadServerConfig(os.Getenv("NOTES_CONFIG"))
	if err != nil {
		shared.NewLogger(os.Stderr, "info").Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := shared.NewLogger(os.Stderr, cfg.LogLevel)

	store, closeStore, err := server.OpenStore(cfg)
	if err != nil {
		logger.Error("failed to open store", "store", cfg.Store, "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.Init(ctx); err != nil {
		logger.Error("failed to initialize store", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}

	static, err := server.NewStatic(cfg.StaticDir)
	if err != nil {
		logger.Error("failed to load static files", "err", err)
		os.Exit(1)
	}
	if files, err := static.ListFiles(); err == nil {
		logger.Debug("static files", "dir", cfg.StaticDir, "files", files)
	}

	api := &server.API{
		Notes: server.NewNoteService(store),
		Log:   logger,
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.NewRouter(api, static, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	logger.Info("server is listening", "url", "http://localhost"+cfg.Addr(), "store", cfg.Store, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
	<-drained
	logger.Info("server stopped")
}
