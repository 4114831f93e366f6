package server

import (
	"net/http"
	"stashspace/config"
	"stashspace/core"
	"stashspace/handlers/api/health"
	"stashspace/handlers/api/placeholder"
	"stashspace/handlers/api/signups"
	"stashspace/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config wires the dependencies the router needs.
type Config struct {
	Store          core.SignupStore
	Status         health.StoreReporter
	APIKey         string
	Environment    string
	AllowedOrigins []string
	MaxBodyBytes   int64
	ExposeErrors   bool
}

type Server struct {
	router chi.Router
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middlewares.Recoverer(cfg.ExposeErrors))
	if cfg.MaxBodyBytes > 0 {
		r.Use(middleware.RequestSize(cfg.MaxBodyBytes))
	}
	r.Use(cors.Handler(corsOptions(cfg)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("stashspace API is running"))
	})
	r.Get("/health", health.Handle(cfg.Environment, cfg.Status))
	r.Get("/placeholder/{width}/{height}", placeholder.Handle())

	h := signups.New(cfg.Store, cfg.ExposeErrors)
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireAPIKey(cfg.APIKey, cfg.ExposeErrors))
		r.Post("/signup", h.Create)
		r.Get("/businesses", h.ListBusinesses)
		r.Get("/providers", h.ListProviders)
	})

	return &Server{router: r}
}

// Router returns the assembled HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// corsOptions keeps development permissive. Production serves only the
// configured origins; config.Load guarantees the list is non-empty there.
func corsOptions(cfg Config) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", middlewares.HeaderAPIKey, "Origin"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}
	if cfg.Environment == config.EnvProduction {
		opts.AllowedOrigins = cfg.AllowedOrigins
	}
	return opts
}
