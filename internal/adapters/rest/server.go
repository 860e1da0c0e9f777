package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"listing-admin-service/internal/core/port"
)

// ServerConfig - параметры HTTP-сервера.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - REST API сервиса.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewServer создает роутер и HTTP-сервер.
func NewServer(cfg ServerConfig, listings *ListingHandler, sessions *EditSessionHandler, interests *InterestHandler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(cfg, listings, sessions, interests, baseLogger),
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// NewRouter собирает все маршруты. Вынесен отдельно, чтобы его можно было
// проверять через httptest без запуска сервера.
func NewRouter(cfg ServerConfig, listings *ListingHandler, sessions *EditSessionHandler, interests *InterestHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listing-options", listings.GetListingOptions)

		r.Route("/listings", func(r chi.Router) {
			// Публичные маршруты
			r.Get("/", listings.ListListings)
			r.Get("/{id}", listings.GetListing)
			r.Get("/{id}/similar", listings.GetSimilarListings)
			r.Post("/{id}/interests", interests.CreateInterest)

			// Админские маршруты
			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware)

				r.Post("/", listings.CreateListing)
				r.Delete("/{id}", listings.DeleteListing)
				r.Get("/{id}/patches", listings.GetPatchHistory)
				r.Get("/{id}/interests", interests.GetListingInterests)
				r.Post("/{id}/edit-sessions", sessions.OpenEditSession)
			})
		})

		r.Route("/edit-sessions", func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Post("/", sessions.OpenCreateSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessions.GetEditSession)
				r.Delete("/", sessions.CancelEditSession)
				r.Put("/form", sessions.UpdateForm)
				r.Post("/reload", sessions.ReloadEditSession)
				r.Post("/media", sessions.ApplyMediaEvent)
				r.Post("/uploads", sessions.AttachUploads)
				r.Post("/preview", sessions.PreviewEditSession)
				r.Post("/submit", sessions.SubmitEditSession)
			})
		})
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
