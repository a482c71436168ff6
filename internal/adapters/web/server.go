package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/masfaiz-code/track-emas-api/internal/adapters/web/handlers"
	"github.com/masfaiz-code/track-emas-api/internal/application/usecases"
)

// Server represents the HTTP server
type Server struct {
	port    int
	prices  *usecases.PriceUseCase
	history *usecases.HistoryUseCase
	logger  *slog.Logger
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(port int, prices *usecases.PriceUseCase, history *usecases.HistoryUseCase, logger *slog.Logger) *Server {
	return &Server{
		port:    port,
		prices:  prices,
		history: history,
		logger:  logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	r := mux.NewRouter()

	// Initialize handlers
	pricesHandler := handlers.NewPricesHandler(s.prices, s.logger)
	historyHandler := handlers.NewHistoryHandler(s.history, s.logger)
	vendorsHandler := handlers.NewVendorsHandler(s.prices, s.logger)
	cacheHandler := handlers.NewCacheHandler(s.prices, s.logger)
	feedHandler := handlers.NewFeedHandler(s.prices, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger)
	infoHandler := handlers.NewInfoHandler(s.history, s.logger)

	// Register routes
	r.HandleFunc("/prices", pricesHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/prices/changes", historyHandler.Changes).Methods(http.MethodGet)
	r.HandleFunc("/prices/history", historyHandler.History).Methods(http.MethodGet)
	r.HandleFunc("/prices/trend", historyHandler.Trend).Methods(http.MethodGet)
	r.HandleFunc("/prices/sync", historyHandler.Sync).Methods(http.MethodPost)
	r.HandleFunc("/vendors", vendorsHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/cache/clear", cacheHandler.Handle).Methods(http.MethodPost)
	r.HandleFunc("/feed/rss", feedHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/info", infoHandler.Handle).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			s.logger.Debug("Request", "method", req.Method, "path", req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: r,
	}

	s.logger.Info("Starting HTTP server", "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
