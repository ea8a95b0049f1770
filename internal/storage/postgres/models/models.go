package models

import "tinyviewers/proj/internal/storage/postgres"

type Models struct {
	Movie    *MovieModel
	Scene    *SceneModel
	Subtitle *SubtitleModel
	Saved    *SavedMovieModel
	Analysis *AnalysisModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:    &MovieModel{db.Conn},
		Scene:    &SceneModel{db.Conn},
		Subtitle: &SubtitleModel{db.Conn},
		Saved:    &SavedMovieModel{db.Conn},
		Analysis: &AnalysisModel{db.Conn},
	}
}
