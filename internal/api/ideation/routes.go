package ideation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers ideation session and form routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/ideation-session", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/message", h.SendMessage)
		r.Post("/{id}/problem-statement", h.GenerateProblemStatement)
		r.Post("/{id}/solution-statement", h.GenerateSolutionStatement)
		r.Patch("/{id}/form", h.UpdateForm)
		r.Post("/{id}/save", h.SaveForm)
		r.Post("/{id}/reset", h.ResetSession)
	})

	r.Get("/ideation-forms/{id}/export", h.ExportForm)
}
