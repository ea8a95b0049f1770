package main

import (
	"errors"
	"net/http"

	"tinyviewers/proj/internal/services/library"
)

func (app *Application) listLibrary(w http.ResponseWriter, r *http.Request) {
	user := app.contextUser(r)
	entries, total, err := app.services.Library.List(r.Context(), user.ID)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": entries, "total": total}, "")
}

func (app *Application) saveMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	user := app.contextUser(r)
	saved, err := app.services.Library.Save(r.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, library.ErrAlreadySaved):
			app.Http.Conflict(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Created(w, r, envelop{"saved": saved}, "Movie successfully saved")
}

func (app *Application) unsaveMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "movieID")
	if !ok {
		return
	}
	user := app.contextUser(r)
	if err := app.services.Library.Unsave(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, library.ErrNotSaved) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie successfully removed from library")
}
