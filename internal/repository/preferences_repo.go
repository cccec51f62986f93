package repository

import (
	"context"
	"errors"

	"Postcraft/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepo interface {
	Get(ctx context.Context, userID uint64) (*model.UserPreferences, error)
	Upsert(ctx context.Context, prefs *model.UserPreferences) error
}

type PreferencesRepoImpl struct {
	db *gorm.DB
}

func NewPreferencesRepo(db *gorm.DB) PreferencesRepo {
	return &PreferencesRepoImpl{db: db}
}

func (s *PreferencesRepoImpl) Get(ctx context.Context, userID uint64) (*model.UserPreferences, error) {
	prefs := &model.UserPreferences{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *PreferencesRepoImpl) Upsert(ctx context.Context, prefs *model.UserPreferences) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(preferenceColumns),
		}).
		Create(prefs).Error
}

var preferenceColumns = []string{
	"frequent_words", "industry_jargon", "signature_expressions", "never_use_phrases", "preferred_hooks",
	"structure_patterns", "content_pillars", "sentence_length", "tone", "storytelling_style", "humor_usage",
	"question_usage", "emoji_usage", "directness", "confidence", "energy", "formality", "industry",
	"target_audience", "updated_at",
}
