package repository

import (
	"context"
	"errors"

	"Postcraft/internal/model"

	"gorm.io/gorm"
)

type PostRepo interface {
	Create(ctx context.Context, post *model.GeneratedPost) error
	GetByID(ctx context.Context, id uint64) (*model.GeneratedPost, error)
	ListByUser(ctx context.Context, userID uint64, status string, limit, offset int) ([]*model.GeneratedPost, int64, error)
	UpdateContent(ctx context.Context, post *model.GeneratedPost) error
	UpdateStatus(ctx context.Context, id, userID uint64, from, to string) (int64, error)
	Delete(ctx context.Context, id, userID uint64) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) Create(ctx context.Context, post *model.GeneratedPost) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetByID(ctx context.Context, id uint64) (*model.GeneratedPost, error) {
	post := &model.GeneratedPost{}
	err := s.db.WithContext(ctx).First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// ListByUser status 为空时不过滤
func (s *PostRepoImpl) ListByUser(ctx context.Context, userID uint64, status string, limit, offset int) ([]*model.GeneratedPost, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.GeneratedPost{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*model.GeneratedPost, 0)
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdateContent 覆盖标题、正文、标签、排期与生成信息
func (s *PostRepoImpl) UpdateContent(ctx context.Context, post *model.GeneratedPost) error {
	return s.db.WithContext(ctx).
		Model(&model.GeneratedPost{ID: post.ID}).
		Select("title", "content", "hashtags", "scheduled_date", "generation_metadata").
		Updates(post).Error
}

// UpdateStatus 仅在当前状态为 from 时生效，返回受影响行数
func (s *PostRepoImpl) UpdateStatus(ctx context.Context, id, userID uint64, from, to string) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.GeneratedPost{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) Delete(ctx context.Context, id, userID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.GeneratedPost{})
	return result.RowsAffected, result.Error
}
