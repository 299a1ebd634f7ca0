package account

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers auth routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/signin", h.SignIn)
	})
}
