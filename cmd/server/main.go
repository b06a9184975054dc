package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dresscode/internal/config"
	"dresscode/internal/logger"
	"dresscode/internal/server/api"
	"dresscode/internal/server/catalog"
	"dresscode/internal/server/sessions"
)

func main() {
	cfg := config.MustLoadServer()
	log := logger.New(cfg.Env)

	mux := api.New(catalog.NewService(log), sessions.NewRegistry(log), log)
	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("catalog server listening", "addr", cfg.RunAddress, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("catalog server stopped")
}
