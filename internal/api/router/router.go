// Package router assembles the chi router for the PRAGMA API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Silveira-k7/PragmaL/internal/analytics"
	"github.com/Silveira-k7/PragmaL/internal/auth"
	"github.com/Silveira-k7/PragmaL/internal/facilities"
	httpmiddleware "github.com/Silveira-k7/PragmaL/internal/http/middleware"
	"github.com/Silveira-k7/PragmaL/internal/reservations"
	"github.com/Silveira-k7/PragmaL/internal/webchat"
	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	AuthHandler         *auth.Handler
	FacilitiesHandler   *facilities.Handler
	ReservationsHandler *reservations.Handler
	AnalyticsHandler    *analytics.Handler
	ChatHandler         *webchat.Handler
	MetricsHandler      http.Handler
	JWTSecret           string
	CORSAllowedOrigins  []string
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: health, metrics, login and the chat widget. The chat
	// stays public because the widget runs before the user signs in.
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.AuthHandler != nil {
			public.Post("/api/auth/login", cfg.AuthHandler.Login)
		}
		if cfg.ChatHandler != nil {
			public.Get("/ws/chat", cfg.ChatHandler.HandleWebSocket)
			public.Post("/api/chat", cfg.ChatHandler.HandleMessage)
			public.Get("/api/chat/greeting", cfg.ChatHandler.HandleGreeting)
		}
	})

	// Authenticated API: any logged-in user can browse facilities and manage
	// reservations.
	r.Group(func(api chi.Router) {
		api.Use(httpmiddleware.RequireUser(cfg.JWTSecret))

		if cfg.FacilitiesHandler != nil {
			api.Get("/api/blocks", cfg.FacilitiesHandler.ListBlocks)
			api.Get("/api/blocks/{blockID}/rooms", cfg.FacilitiesHandler.ListRooms)
		}
		if cfg.ReservationsHandler != nil {
			api.Route("/api/reservations", func(r chi.Router) {
				r.Get("/", cfg.ReservationsHandler.List)
				r.Post("/", cfg.ReservationsHandler.Create)
				r.Post("/semester", cfg.ReservationsHandler.CreateSemester)
				r.Delete("/{reservationID}", cfg.ReservationsHandler.Delete)
			})
		}
		if cfg.AnalyticsHandler != nil {
			api.Route("/api/analytics", func(r chi.Router) {
				r.Get("/stats", cfg.AnalyticsHandler.GetStats)
				r.Get("/teachers", cfg.AnalyticsHandler.TeacherRanking)
				r.Get("/rooms", cfg.AnalyticsHandler.RoomUsage)
				r.Get("/export", cfg.AnalyticsHandler.Export)
			})
		}
	})

	// Admin API: block/room management and user registration.
	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.RequireAdmin(cfg.JWTSecret))

		if cfg.FacilitiesHandler != nil {
			admin.Post("/api/admin/blocks", cfg.FacilitiesHandler.CreateBlock)
			admin.Delete("/api/admin/blocks/{blockID}", cfg.FacilitiesHandler.DeleteBlock)
			admin.Post("/api/admin/rooms", cfg.FacilitiesHandler.CreateRoom)
			admin.Delete("/api/admin/rooms/{roomID}", cfg.FacilitiesHandler.DeleteRoom)
		}
		if cfg.AuthHandler != nil {
			admin.Post("/api/admin/users", cfg.AuthHandler.Register)
		}
	})

	return r
}
