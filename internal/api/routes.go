package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(ownerMiddleware)

		r.Post("/items", s.handleCreateItem)
		r.Get("/items", s.handleListItems)
		r.Get("/items/{id}", s.handleGetItem)
		r.Delete("/items/{id}", s.handleDeleteItem)

		r.Post("/review/session", s.handleStartSession)
		r.Get("/review/current", s.handleCurrentItem)
		r.Post("/review/grade", s.handleSubmitGrade)
		r.Get("/review/due-count", s.handleDueCount)

		r.Get("/stats", s.handleStats)
	})

	return r
}
