package main

import (
	"errors"
	"net/http"

	"tinyviewers/proj/internal/clients/metadata"
	"tinyviewers/proj/internal/domain/filters"
	"tinyviewers/proj/internal/lib/validator"
	"tinyviewers/proj/internal/services/movies"
)

type createMovieInput struct {
	Title      string  `json:"title" validate:"required,max=255"`
	Summary    string  `json:"summary" validate:"max=2000"`
	PosterURL  string  `json:"poster_url" validate:"omitempty,url"`
	ExternalID *string `json:"external_id" validate:"omitempty,max=64"`
	Year       *int32  `json:"year" validate:"omitempty,gte=1888,lte=2100"`
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input createMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	movie, err := app.services.Movies.Create(r.Context(), input.Title, input.Summary, input.PosterURL, input.ExternalID, input.Year)
	if err != nil {
		if errors.Is(err, movies.ErrMovieAlreadyExists) {
			app.Http.Conflict(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "Movie successfully created")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

type listMoviesInput struct {
	Title    string `schema:"title" validate:"max=255"`
	Page     int    `schema:"page" validate:"omitempty,gte=1"`
	PageSize int    `schema:"page_size" validate:"omitempty,gte=1,lte=100"`
	Sort     string `schema:"sort" validate:"omitempty,oneof=id title year rating -id -title -year -rating"`
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	var input listMoviesInput
	if err := app.decodeQuery(r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	// Zero values pass omitempty validation, so default them here instead of
	// before decoding where ?page=0 or ?sort= would overwrite the default.
	if input.Page == 0 {
		input.Page = 1
	}
	if input.PageSize == 0 {
		input.PageSize = 20
	}
	if input.Sort == "" {
		input.Sort = "id"
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	movieFilters := filters.Filters{
		Page:         input.Page,
		PageSize:     input.PageSize,
		Sort:         input.Sort,
		SortSafelist: []string{"id", "title", "year", "rating"},
	}
	movieList, total, err := app.services.Movies.List(r.Context(), input.Title, movieFilters)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"movies": movieList,
		"total":  total,
		"page":   input.Page,
	}, "")
}

type updateMovieInput struct {
	Title      *string `json:"title" validate:"omitempty,max=255"`
	Summary    *string `json:"summary" validate:"omitempty,max=2000"`
	PosterURL  *string `json:"poster_url" validate:"omitempty,url"`
	ExternalID *string `json:"external_id" validate:"omitempty,max=64"`
	Year       *int32  `json:"year" validate:"omitempty,gte=1888,lte=2100"`
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input updateMovieInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if validationErrs := validator.ValidateStruct(app.validator, input); validationErrs != nil {
		app.Http.UnprocessableEntity(w, r, validationErrs)
		return
	}
	movie, err := app.services.Movies.Update(r.Context(), id, input.Title, input.Summary, input.PosterURL, input.ExternalID, input.Year)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, movies.ErrMovieAlreadyExists):
			app.Http.Conflict(w, r, err.Error())
		default:
			app.Http.ServerError(w, r, err, "")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Movie successfully updated")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, movies.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Movie successfully deleted")
}

func (app *Application) refreshMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.services.Movies.RefreshMetadata(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			app.Http.NotFound(w, r, err.Error())
		case errors.Is(err, movies.ErrNoExternalID):
			app.Http.BadRequest(w, r, err.Error())
		case errors.Is(err, metadata.ErrTitleNotFound):
			app.Http.NotFound(w, r, "metadata provider does not know this title")
		case errors.Is(err, metadata.ErrNotConfigured):
			app.Http.ServerError(w, r, err, "Metadata lookups are not configured")
		default:
			app.Http.BadGateway(w, r, "Metadata provider is unavailable, try again later")
		}
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "Metadata successfully refreshed")
}
