package main

import (
	"errors"
	"net/http"

	"tinyviewers/proj/internal/services/subtitles"
)

type fetchSubtitlesInput struct {
	Language string `json:"language" validate:"omitempty,len=2"`
}

func (app *Application) fetchSubtitles(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	input := fetchSubtitlesInput{Language: app.cfg.Clients.Subtitles.Language}
	if r.ContentLength > 0 {
		if err := app.readJSON(w, r, &input); err != nil {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
	}
	subtitle, err := app.services.Subtitles.Fetch(r.Context(), id, input.Language)
	if err != nil {
		switch {
		case errors.Is(err, subtitles.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, subtitles.ErrNoExternalID):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, subtitles.ErrNoSubtitle):
			app.Http.NotFound(w, r, "no subtitle available for this movie")
		default:
			app.Http.BadGateway(w, r, "Subtitle provider is unavailable, try again later")
		}
		return
	}
	app.Http.Created(w, r, envelop{"subtitle": subtitle}, "Subtitle successfully stored")
}

func (app *Application) latestSubtitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	subtitle, err := app.services.Subtitles.Latest(r.Context(), id)
	if err != nil {
		if errors.Is(err, subtitles.ErrNoSubtitle) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"subtitle": subtitle}, "")
}
