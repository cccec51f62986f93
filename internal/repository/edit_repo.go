package repository

import (
	"context"

	"Postcraft/internal/model"

	"gorm.io/gorm"
)

// EditStats 用户修改记录的聚合
type EditStats struct {
	Total        int64            `json:"total"`
	AvgCharDelta float64          `json:"avg_char_delta"`
	Significance map[string]int64 `json:"significance"`
}

type EditRepo interface {
	Create(ctx context.Context, edit *model.ContentEdit) error
	ListRecent(ctx context.Context, userID uint64, limit int) ([]*model.ContentEdit, error)
	RecentSignals(ctx context.Context, userID uint64, limit int) ([][]string, error)
	Stats(ctx context.Context, userID uint64) (*EditStats, error)
}

type EditRepoImpl struct {
	db *gorm.DB
}

func NewEditRepo(db *gorm.DB) EditRepo {
	return &EditRepoImpl{db: db}
}

func (s *EditRepoImpl) Create(ctx context.Context, edit *model.ContentEdit) error {
	return s.db.WithContext(ctx).Create(edit).Error
}

func (s *EditRepoImpl) ListRecent(ctx context.Context, userID uint64, limit int) ([]*model.ContentEdit, error) {
	edits := make([]*model.ContentEdit, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&edits).Error
	if err != nil {
		return nil, err
	}
	return edits, nil
}

// RecentSignals 最近 limit 条带信号的修改记录，新的在前
func (s *EditRepoImpl) RecentSignals(ctx context.Context, userID uint64, limit int) ([][]string, error) {
	edits := make([]*model.ContentEdit, 0)
	err := s.db.WithContext(ctx).
		Select("id", "learning_signals").
		Where("user_id = ? AND JSON_LENGTH(learning_signals) > 0", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&edits).Error
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(edits))
	for _, e := range edits {
		if len(e.LearningSignals) > 0 {
			out = append(out, e.LearningSignals)
		}
	}
	return out, nil
}

type significanceRow struct {
	Significance string
	Count        int64
}

func (s *EditRepoImpl) Stats(ctx context.Context, userID uint64) (*EditStats, error) {
	var agg struct {
		Total        int64
		AvgCharDelta float64
	}
	err := s.db.WithContext(ctx).
		Model(&model.ContentEdit{}).
		Select("COUNT(*) AS total, COALESCE(AVG(char_delta), 0) AS avg_char_delta").
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	rows := make([]significanceRow, 0)
	err = s.db.WithContext(ctx).
		Model(&model.ContentEdit{}).
		Select("significance, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("significance").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &EditStats{
		Total:        agg.Total,
		AvgCharDelta: agg.AvgCharDelta,
		Significance: make(map[string]int64, len(rows)),
	}
	for _, r := range rows {
		stats.Significance[r.Significance] = r.Count
	}
	return stats, nil
}
