// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"vizdash/internal/config"
	"vizdash/internal/server/handlers"
	"vizdash/internal/service/analytics"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	data handlers.LiveDataset,
	viewOpts analytics.ViewOptions,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	dataHandler := handlers.NewDataHandler(data, viewOpts)
	dashboardHandler := handlers.NewDashboardHandler(data, viewOpts, handlers.DefaultWebSocketConfig())

	router.Get("/", handlers.Welcome)

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			r.Get("/data", dataHandler.GetData)
			r.Get("/criteria", dataHandler.GetCriteria)
			r.Post("/filter", dataHandler.Filter)
			r.Post("/view", dataHandler.View)
			r.Get("/map", dataHandler.Map)

			r.Route("/aggregate", func(r chi.Router) {
				r.Get("/count", dataHandler.CountByKey)
				r.Get("/mean", dataHandler.MeanByKey)
			})
		})
	})

	router.Get("/charts", dataHandler.Charts)

	// WebSocket endpoint for live dashboards
	router.Get("/ws/dashboard", dashboardHandler.ServeWS)

	router.NotFound(handlers.NotFound)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
