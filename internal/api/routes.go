package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/kanjiflash/internal/errors"
)

const requestTimeout = 30 * time.Second

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(timeoutMiddleware(requestTimeout))

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", s.handleListSubjects)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSubject)
				r.Post("/answer", s.handleSubmitAnswer)
				r.Post("/lesson", s.handleStartLesson)
				r.Post("/review", s.handleCompleteReview)
				r.Get("/reviews", s.handleListReviews)
				r.Get("/pitch", s.handleGetPitch)
			})
		})
		r.Get("/assignments/overdue", s.handleListOverdue)
		r.Get("/assignments/available", s.handleListAvailable)

		r.Get("/streak", s.handleGetStreak)
		r.Post("/streak/refresh", s.handleRefreshStreak)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Post("/import", s.handleImport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, &errors.AppError{
			Code:    "METHOD_NOT_ALLOWED",
			Message: r.Method + " not allowed on " + r.URL.Path,
			Status:  http.StatusMethodNotAllowed,
		})
	})
	return r
}
