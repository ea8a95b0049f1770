package subtitles

import "errors"

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrNoExternalID  = errors.New("movie has no external id for subtitle lookup")
	ErrNoSubtitle    = errors.New("provider has no subtitle for this movie")
)
