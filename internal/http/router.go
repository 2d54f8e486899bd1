package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/homa/internal/http/assistant"
	"github.com/MrJamesThe3rd/homa/internal/http/dashboard"
	"github.com/MrJamesThe3rd/homa/internal/http/importdata"
	"github.com/MrJamesThe3rd/homa/internal/http/invoice"
	"github.com/MrJamesThe3rd/homa/internal/http/maintenance"
	"github.com/MrJamesThe3rd/homa/internal/http/tenant"
	"github.com/MrJamesThe3rd/homa/internal/http/unit"
)

type Handlers struct {
	Dashboard   *dashboard.Handler
	Units       *unit.Handler
	Tenants     *tenant.Handler
	Invoices    *invoice.Handler
	Maintenance *maintenance.Handler
	Assistant   *assistant.Handler
	Import      *importdata.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/dashboard", h.Dashboard.Routes)

		r.Route("/units", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Units.Routes(r)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Tenants.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Maintenance.Routes(r)
		})

		r.Route("/assistant", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Assistant.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
	})

	return router
}
