package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the storefront routes. Every page route runs inside the
// lifecycle middleware; static assets bypass it.
func NewRouter(h *Handlers, l *Lifecycle, staticDir string) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(l.Middleware)

		r.Get("/", h.Index)
		r.Post("/", h.Index)
		r.Get("/fonts", h.Fonts)
		r.Get("/cart", h.Cart)
		r.Post("/cart/add", h.CartAdd)
		r.Get("/account", h.Account)
		r.Post("/logout", h.Logout)
	})

	if staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	return r
}
