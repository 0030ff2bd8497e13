package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/handlers"
	"github.com/ravidu/futureminds/internal/middleware"
	"github.com/ravidu/futureminds/pkg/logging"
)

type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

func New(settings config.Settings, handler *handlers.Handler) *Server {
	mw := middleware.New(settings)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/ask", mw.Wrap(handler.Ask))
	r.Post("/ingest", mw.Wrap(handler.Ingest))

	return &Server{
		httpServer: &http.Server{
			Addr:         config.ServerListenAddr,
			Handler:      r,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logging.NewLogger("server"),
	}
}

// Run blocks until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server is listening", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	s.httpServer.SetKeepAlivesEnabled(false)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("could not shut down gracefully", "error", err)
		return err
	}
	s.logger.Info("server shut down")
	return nil
}
