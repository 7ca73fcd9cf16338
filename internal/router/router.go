// Package router sets up all HTTP routes and middleware chains for the
// public site. Page routes, the JSON listing API, and the contact form
// each get an appropriate middleware stack.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"medivisor/internal/handlers"
	"medivisor/internal/middleware"
	"medivisor/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(public *handlers.Public, contact *handlers.Contact, ops *handlers.Ops, contactLimiter *middleware.RateLimiter, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Embedded static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Public pages.
	r.Get("/", public.Homepage)
	r.Get("/blog", public.BlogIndex)
	r.Get("/blog/{slug}", public.BlogPost)
	r.Get("/hospitals", public.Hospitals)
	r.Get("/faqs", public.FAQs)
	r.Get("/treatments", public.Treatments)

	// Contact form. The POST is rate-limited per IP to keep the external
	// form endpoint and the leads table clean of scripted spam.
	r.Get("/contact", contact.Form)
	r.Group(func(r chi.Router) {
		r.Use(contactLimiter.Middleware)
		r.Post("/contact", contact.Submit)
	})

	// JSON listing API, consumed by the load-more script. CORS is scoped
	// to this group so page routes stay same-origin only.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}).Handler)
		r.Get("/blog", public.APIBlogPage)
	})

	// Operational endpoints, bearer-token guarded, same-origin only.
	r.Route("/ops", func(r chi.Router) {
		r.Post("/revalidate", ops.Revalidate)
		r.Get("/leads", ops.Leads)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
