package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/markdave123-py/Chunkwise/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Chunkwise/internal/api/middlewares"
	"github.com/markdave123-py/Chunkwise/internal/config"
	"github.com/markdave123-py/Chunkwise/internal/core/ingestion_engine"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/metrics"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        logger.Logger
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, ing ingestion_engine.Ingestor, m *metrics.Metrics, log logger.Logger) *Server {
	ingestHandler := handlers.NewIngestHandler(ing, cfg.MaxContentLength)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(requestLogger(log))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Batch-ID"},
		AllowCredentials: true,
	}))

	r.Get("/", handlers.Index)
	r.Get("/healthz", handlers.Healthz)
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(api chi.Router) {
		if cfg.JWTSecret != "" {
			api.Use(appMiddleware.JWTMiddleware(cfg.JWTSecret))
		}
		api.Post("/ingest", ingestHandler.Ingest)
		api.Get("/list-strategies", ingestHandler.ListStrategies)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// requestLogger scopes the service logger to the chi request id.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
		})
	}
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
