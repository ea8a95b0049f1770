package library

import "errors"

var (
	ErrAlreadySaved  = errors.New("movie is already in the library")
	ErrNotSaved      = errors.New("movie is not in the library")
	ErrMovieNotFound = errors.New("movie not found")
)
