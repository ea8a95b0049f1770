package movies

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrMovieAlreadyExists = errors.New("movie with that title and year already exists")
	ErrNoExternalID       = errors.New("movie has no external id for provider lookup")
)
