package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
	"github.com/EphemeralEpoch/smart-book-gist/internal/middleware"
)

type Server struct {
	Router http.Handler
}

func NewServer(cfg config.Config, gist Gister, logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.AccessLog(logger))

	r.Get("/", Index())
	r.Get("/health", Health())
	r.Post("/summarize", Summarize(cfg, gist, logger))

	return &Server{Router: r}
}
