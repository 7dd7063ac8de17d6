package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/sales-os/internal/config"
	"github.com/xavierca1/sales-os/internal/infra/http/handlers"
	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/logger"
)

type routes struct {
	Health        *handlers.HealthHandler
	Webhook       *handlers.WebhookHandler
	Lead          *handlers.LeadHandler
	Board         *handlers.BoardHandler
	Report        *handlers.ReportHandler
	Notification  *handlers.NotificationHandler
	Settings      *handlers.SettingsHandler
	IntakeLimiter *middleware.RateLimiter
}

func newRouter(cfg *config.Config, log logger.Logger, h routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Públicas
	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.With(h.IntakeLimiter.Middleware).Post("/webhook/leads", h.Webhook.Handle)

	// Sessão Supabase
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.SupabaseJWTSecret))

		r.Get("/board", h.Board.HandleGet)
		r.Get("/board/stream", h.Board.HandleStream)
		r.Post("/board/move", h.Board.HandleMove)

		r.Post("/leads", h.Lead.HandleCreate)
		r.Put("/leads/{id}", h.Lead.HandleUpdate)

		r.Get("/ranking", h.Report.HandleRanking)
		r.Get("/dashboard", h.Report.HandleDashboard)

		r.Get("/notifications", h.Notification.HandleList)
		r.Post("/notifications/read", h.Notification.HandleMarkAllRead)
		r.Get("/notifications/stream", h.Notification.HandleStream)

		r.Get("/me/preferences", h.Settings.HandleGetPreferences)
		r.Put("/me/preferences", h.Settings.HandleSavePreferences)
		r.Get("/me/profile", h.Settings.HandleGetProfile)
		r.Put("/me/profile", h.Settings.HandleUpdateProfile)
	})

	return r
}
