package http

import (
	"log/slog"
	"net/http"
	"time"

	"leadapi/internal/service"
	"leadapi/internal/store"

	obsmw "leadapi/internal/observability/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	// AllowedOrigins is the exact-match CORS allow-list. An origin not on
	// the list gets no CORS headers at all.
	AllowedOrigins []string
	SessionTTL     time.Duration
	RateLimitRPM   int
	TrustProxy     bool
}

type Handler struct {
	auth       service.AuthService
	leads      service.LeadService
	tokens     service.TokenService
	store      *store.Store
	sessionTTL time.Duration
}

func NewRouter(cfg Config, auth service.AuthService, leads service.LeadService, tokens service.TokenService, st *store.Store) http.Handler {
	h := &Handler{
		auth:       auth,
		leads:      leads,
		tokens:     tokens,
		store:      st,
		sessionTTL: cfg.SessionTTL,
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(recoverJSON)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(obsmw.WithRequestLogging)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		// Public endpoints, rate limited per IP.
		api.Group(func(public chi.Router) {
			if cfg.RateLimitRPM > 0 {
				public.Use(httprate.LimitByIP(cfg.RateLimitRPM, time.Minute))
			}
			public.Post("/leads", h.handleSubmitLead)
			public.Post("/auth/login", h.handleLogin)
			public.Post("/auth/logout", h.handleLogout)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(h.requireSession)

			admin.Get("/routes", h.handleListRoutes)
			admin.Post("/routes", h.handleUpsertRoutes)
			admin.Delete("/routes/{city}", h.handleDeleteRoute)

			admin.Get("/users", h.handleListUsers)
			admin.Post("/users", h.handleCreateUser)
			admin.Delete("/users/{username}", h.handleDeleteUser)

			admin.Get("/settings", h.handleGetSettings)
			admin.Post("/settings", h.handleUpdateSettings)

			admin.Get("/leads", h.handleListLeads)

			// Session is required before the path is even matched, so this
			// only fires for authenticated requests to unknown admin paths.
			admin.NotFound(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusNotFound, codeNotFound)
			})
		})
	})

	// Anything outside /api falls through to chi's plain 404.
	return r
}

// recoverJSON turns panics anywhere in dispatch into a logged 500 with the
// stable INTERNAL_ERROR code.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic in handler", "panic", rec, "method", r.Method, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, codeInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
