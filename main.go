package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"stashspace/config"
	"stashspace/server"
	"stashspace/stores"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithField("error", err).Fatal("Invalid configuration")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := stores.GetStore(ctx, cfg)
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to initialize signup store")
	}

	supervisor := stores.NewSupervisor(store)
	go supervisor.Run(ctx)

	srv := server.New(server.Config{
		Store:          store,
		Status:         supervisor,
		APIKey:         cfg.APIKey,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		ExposeErrors:   cfg.ExposeErrors(),
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"driver":      cfg.StoreDriver,
		}).Info("stashspace API listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithField("error", err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithField("error", err).Error("HTTP server shutdown failed")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logrus.WithField("error", err).Error("Store shutdown failed")
	}
	logrus.Info("Server stopped")
}
