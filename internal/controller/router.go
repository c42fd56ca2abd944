package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIdMw)

	r.Route("/api/v1/sync", func(r chi.Router) {
		r.Get("/client/{room-id}", c.SSEClient)
		r.Get("/ws/{room-id}", c.WSClient)
		r.Get("/resync/{room-id}", c.Resync)
		r.Post("/{room-id}", c.HandleAction)
	})

	r.Get("/healthz", c.Healthz)

	return r
}
