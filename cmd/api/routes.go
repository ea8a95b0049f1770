package main

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
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
			r.Get("/", app.listMovies)
			r.Post("/", app.createMovie)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.getMovie)
				r.Patch("/", app.updateMovie)
				r.Delete("/", app.deleteMovie)
				r.Get("/scenes", app.listScenes)
				r.Get("/analyses", app.listAnalyses)
				r.Post("/analyze", app.analyzeMovie)
				r.Get("/subtitles", app.latestSubtitle)
				r.Post("/subtitles", app.fetchSubtitles)
				r.Post("/metadata", app.refreshMetadata)
			})
		})
		r.Route("/library", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.listLibrary)
			r.Put("/{movieID}", app.saveMovie)
			r.Delete("/{movieID}", app.unsaveMovie)
		})
		r.With(app.requireAuthenticatedUser).Post("/feedback", app.submitFeedback)
	})
	return router
}
