package whatsapp

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/webhook", h.HandleVerify)
	r.Post("/webhook", h.HandleWebhook)
}
