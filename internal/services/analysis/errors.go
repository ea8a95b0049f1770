package analysis

import "errors"

var (
	ErrMovieNotFound        = errors.New("movie not found")
	ErrSubtitleNotFound     = errors.New("no subtitle record found for movie")
	ErrSubtitleTooShort     = errors.New("subtitle text is too short to analyze")
	ErrUnparsableResponse   = errors.New("no JSON object found in model reply")
	ErrInvalidResponseShape = errors.New("model reply is missing required fields")
	ErrPersistence          = errors.New("failed to persist analysis")
)
