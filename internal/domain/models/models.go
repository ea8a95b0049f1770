package models

import (
	"time"

	"tinyviewers/proj/internal/domain/fields"
)

type Movie struct {
	ID         int64            `json:"id"`                    // Unique integer ID for the movie
	Title      string           `json:"title"`                 // Movie title
	Summary    string           `json:"summary,omitempty"`     // Short plot description shown on the detail page
	PosterURL  string           `json:"poster_url,omitempty"`  // Poster image reference
	Rating     float64          `json:"rating"`                // Community rating from the metadata provider
	AgeScores  fields.AgeScores `json:"age_scores,omitempty"`  // Per age bucket 1-5 score, overwritten by analysis
	ExternalID *string          `json:"external_id,omitempty"` // Provider ID used for metadata/subtitle lookup
	Year       *int32           `json:"year,omitempty"`        // Release year
	Version    uint             `json:"version"`               // Incremented on each update
	CreatedAt  time.Time        `json:"-"`
}

type Scene struct {
	ID          int64           `json:"id"`
	MovieID     int64           `json:"movie_id"`
	StartTime   string          `json:"start_time"` // "HH:MM:SS", not validated for ordering
	EndTime     string          `json:"end_time"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags,omitempty"`
	Intensity   int32           `json:"intensity"` // 1-5, independent of age
	AgeFlags    fields.AgeFlags `json:"age_flags"` // Always covers all four buckets
	CreatedAt   time.Time       `json:"-"`
}

type Subtitle struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	Content   string    `json:"-"` // Raw plain text, write-once input to analysis
	Language  string    `json:"language"`
	Source    string    `json:"source"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

type SavedMovie struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	CreatedAt time.Time `json:"saved_at"`
}

// AnalysisRecord is an append-only snapshot of one completed analysis
// generation, kept for the trend display.
type AnalysisRecord struct {
	ID         int64            `json:"id"`
	MovieID    int64            `json:"movie_id"`
	AgeScores  fields.AgeScores `json:"age_scores"`
	SceneCount int32            `json:"scene_count"`
	CreatedAt  time.Time        `json:"created_at"`
}

// User is the identity carried by tokens from the delegated auth provider.
// There is no local users table; the provider owns the accounts.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser
}
