package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/wellness-portal/internal/directory"
	"github.com/wolfman30/wellness-portal/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/wellness-portal/internal/http/middleware"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	Auth         *handlers.AuthHandler
	Portal       *handlers.PortalHandler
	Appointments *handlers.AppointmentsHandler
	Admin        *handlers.AdminHandler

	Sessions  httpmiddleware.SessionResolver
	Cookie    session.Cookie
	LoginPath string

	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter        *httpmiddleware.RateLimiter
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	if cfg.RateLimiter != nil {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimiter, httpmiddleware.SessionOrIP(cfg.Cookie)))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", cfg.Auth.Login)
			auth.Post("/logout", cfg.Auth.Logout)
			auth.Post("/register", cfg.Auth.Register)
		})
	})

	// Session-protected endpoints
	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.RequireSession(cfg.Sessions, cfg.Cookie, cfg.LoginPath, cfg.Logger))

		private.Get("/auth/me", cfg.Auth.Me)

		private.Route("/api", func(api chi.Router) {
			api.Get("/dashboard", cfg.Portal.Dashboard)
			api.Get("/services", cfg.Portal.Services)
			api.Get("/professionals", cfg.Portal.Professionals)
			api.Get("/professionals/search", cfg.Portal.SearchProfessionals)

			api.Route("/appointments", func(appts chi.Router) {
				appts.Get("/", cfg.Appointments.List)
				appts.Post("/", cfg.Appointments.Create)
				appts.With(httpmiddleware.RequireRole(directory.RoleProfessional)).Get("/agenda", cfg.Appointments.Agenda)
				appts.Patch("/{id}/{action}", cfg.Appointments.Act)
				appts.With(httpmiddleware.RequireRole(directory.RoleAdmin)).Delete("/{id}", cfg.Appointments.Delete)
			})

			api.Route("/admin", func(admin chi.Router) {
				admin.Use(httpmiddleware.RequireRole(directory.RoleAdmin))
				admin.Get("/appointments", cfg.Admin.Appointments)
				admin.Get("/users", cfg.Admin.Users)
				admin.Post("/users", cfg.Admin.CreateUser)
				admin.Put("/users/{id}", cfg.Admin.UpdateUser)
				admin.Delete("/users/{id}", cfg.Admin.DeleteUser)
				admin.Post("/services", cfg.Admin.CreateService)
				admin.Put("/services/{id}", cfg.Admin.UpdateService)
				admin.Delete("/services/{id}", cfg.Admin.DeleteService)
				admin.Post("/professionals", cfg.Admin.CreateProfessional)
				admin.Put("/professionals/{id}", cfg.Admin.UpdateProfessional)
				admin.Delete("/professionals/{id}", cfg.Admin.DeleteProfessional)
			})
		})
	})

	return r
}
