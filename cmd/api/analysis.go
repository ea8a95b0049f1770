package main

import (
	"errors"
	"net/http"

	"tinyviewers/proj/internal/clients/contentai"
	"tinyviewers/proj/internal/services/analysis"
)

func (app *Application) analyzeMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	result, err := app.services.Analysis.Run(r.Context(), id)
	if err != nil {
		var invocationErr *contentai.InvocationError
		switch {
		case errors.Is(err, analysis.ErrMovieNotFound),
			errors.Is(err, analysis.ErrSubtitleNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, analysis.ErrSubtitleTooShort):
			app.Http.UnprocessableEntity(w, r, map[string]string{
				"subtitle": "subtitle text is too short to analyze",
			})
		case errors.As(err, &invocationErr),
			errors.Is(err, analysis.ErrUnparsableResponse),
			errors.Is(err, analysis.ErrInvalidResponseShape):
			app.Http.BadGateway(w, r, "Analysis model is unavailable or returned garbage, try again later")
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"result": result}, "Analysis successfully completed")
}

func (app *Application) listAnalyses(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	records, err := app.services.Analysis.History(r.Context(), id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"analyses": records}, "")
}
