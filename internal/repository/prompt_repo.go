package repository

import (
	"context"
	"errors"
	"time"

	"Postcraft/internal/model"
	"Postcraft/internal/pkg/consts"

	"gorm.io/gorm"
)

type PromptRepo interface {
	GetByID(ctx context.Context, id uint64) (*model.ContentPrompt, error)
	ListByUser(ctx context.Context, userID uint64, includeUsed bool) ([]*model.ContentPrompt, error)
	ReplaceAdminBatch(ctx context.Context, userID uint64, prompts []*model.ContentPrompt) error
	UpdateSchedule(ctx context.Context, id uint64, date *string, pushed bool) error
	CountPushedOnDate(ctx context.Context, userID uint64, date string, excludeID uint64) (int64, error)
	MarkUsed(ctx context.Context, id uint64) error
	ArchiveStale(ctx context.Context, before string) (int64, error)
}

type PromptRepoImpl struct {
	db *gorm.DB
}

func NewPromptRepo(db *gorm.DB) PromptRepo {
	return &PromptRepoImpl{db: db}
}

func (s *PromptRepoImpl) GetByID(ctx context.Context, id uint64) (*model.ContentPrompt, error) {
	prompt := &model.ContentPrompt{}
	err := s.db.WithContext(ctx).First(prompt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return prompt, nil
}

// ListByUser 按排期日期排序，未排期的排在最后
func (s *PromptRepoImpl) ListByUser(ctx context.Context, userID uint64, includeUsed bool) ([]*model.ContentPrompt, error) {
	prompts := make([]*model.ContentPrompt, 0)
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeUsed {
		query = query.Where("is_used = ?", false)
	}
	err := query.
		Order("scheduled_date IS NULL, scheduled_date ASC, id ASC").
		Find(&prompts).Error
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// ReplaceAdminBatch 删除该用户未使用的管理员选题后写入新批次，整体在一个事务内
func (s *PromptRepoImpl) ReplaceAdminBatch(ctx context.Context, userID uint64, prompts []*model.ContentPrompt) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND source = ? AND is_used = ?", userID, consts.PromptSourceAdmin, false).
			Delete(&model.ContentPrompt{}).Error
		if err != nil {
			return err
		}
		if len(prompts) == 0 {
			return nil
		}
		return tx.Create(&prompts).Error
	})
}

func (s *PromptRepoImpl) UpdateSchedule(ctx context.Context, id uint64, date *string, pushed bool) error {
	return s.db.WithContext(ctx).
		Model(&model.ContentPrompt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_date":     date,
			"pushed_to_calendar": pushed,
		}).Error
}

// CountPushedOnDate 统计同一天已推送到日历的选题数，排除 excludeID 自身
func (s *PromptRepoImpl) CountPushedOnDate(ctx context.Context, userID uint64, date string, excludeID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.ContentPrompt{}).
		Where("user_id = ? AND scheduled_date = ? AND pushed_to_calendar = ? AND id <> ?", userID, date, true, excludeID).
		Count(&count).Error
	return count, err
}

func (s *PromptRepoImpl) MarkUsed(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.ContentPrompt{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}

// ArchiveStale 归档排期早于 before 且从未推送的选题
func (s *PromptRepoImpl) ArchiveStale(ctx context.Context, before string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.ContentPrompt{}).
		Where("is_used = ? AND pushed_to_calendar = ? AND scheduled_date IS NOT NULL AND scheduled_date < ?", false, false, before).
		Updates(map[string]interface{}{
			"is_used":    true,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
