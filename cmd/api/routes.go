package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Use(app.requireAdmin)
			r.Get("/", app.getMovies)
			r.Post("/", app.createMovie)
			r.Get("/{id}", app.getMovie)
			r.Patch("/{id}", app.updateMovie)
			r.Delete("/{id}", app.deleteMovie)
		})
		r.Route("/screenings", func(r chi.Router) {
			r.Use(app.requireAdmin)
			r.Get("/", app.getScreenings)
			r.Post("/", app.createScreening)
			r.Get("/stats", app.getScreeningStatsList)
			r.Get("/{id}", app.getScreening)
			r.Patch("/{id}", app.updateScreening)
			r.Delete("/{id}", app.deleteScreening)
			r.Get("/{id}/stats", app.getScreeningStats)
			r.Get("/{id}/attendance", app.getScreeningAttendance)
		})
		r.Route("/reservations", func(r chi.Router) {
			r.Use(app.requireAuthenticated)
			r.Get("/", app.getReservations)
			r.Post("/", app.createReservation)
			r.Get("/{id}", app.getReservation)
			r.Patch("/{id}", app.updateReservation)
			r.Delete("/{id}", app.deleteReservation)
			r.Get("/{id}/qrcode", app.getReservationQRCode)
		})
		// No route-level admin guard here: the validation routine checks the
		// scanner itself so unauthorized scans get the structured result.
		r.Post("/attendance/scan", app.scanAttendance)
	})
	return router
}
