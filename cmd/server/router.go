package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ykuzmenko/smartsend/internal/handler"
)

func setupRouter(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Root)
		r.Get("/health", h.HealthCheck)

		r.Get("/products", h.ListProducts)

		r.Post("/profile", h.UpsertProfile)
		r.Get("/profile/{anonID}", h.GetProfile)
		r.Delete("/profile/{anonID}", h.DeleteProfile)

		r.Post("/events", h.CreateEvent)
		r.Get("/events/{anonID}", h.ListEvents)

		r.Post("/messages/send", h.SendMessage)
		r.Get("/messages/{anonID}", h.ListMessages)
		r.Post("/messages/{messageID}/convert", h.ConvertMessage)

		r.Get("/analytics", h.GetAnalytics)
		r.Get("/analytics/logs", h.GetAnalyticsLogs)

		r.Get("/admin/settings", h.GetAdminSettings)
		r.Post("/admin/settings", h.UpdateAdminSettings)
		r.Post("/admin/trigger-abandoned/{anonID}", h.TriggerAbandonedCart)
	})

	return r
}
