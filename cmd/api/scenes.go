package main

import (
	"net/http"
)

func (app *Application) listScenes(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	scenes, err := app.services.Analysis.Scenes(r.Context(), id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"scenes": scenes}, "")
}
