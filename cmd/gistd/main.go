package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/EphemeralEpoch/smart-book-gist/internal/api"
	"github.com/EphemeralEpoch/smart-book-gist/internal/client"
	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
	"github.com/EphemeralEpoch/smart-book-gist/internal/logging"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, relying on environment")
	}

	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel)
	logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting smart-book-gist")

	gist, err := client.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("client init failed")
	}

	app := api.NewServer(cfg, gist, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
}
