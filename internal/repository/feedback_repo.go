package repository

import (
	"context"

	"Postcraft/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepo interface {
	CreatePostFeedback(ctx context.Context, fb *model.PostFeedback) error
	CreateUserFeedback(ctx context.Context, fb *model.UserFeedback) error
	ListPostFeedback(ctx context.Context, limit int) ([]*model.PostFeedback, error)
	ListUserFeedback(ctx context.Context, limit int) ([]*model.UserFeedback, error)
	Count(ctx context.Context) (int64, error)
	RecentComments(ctx context.Context, userID uint64, limit int) ([]string, error)
}

type FeedbackRepoImpl struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepo {
	return &FeedbackRepoImpl{db: db}
}

func (s *FeedbackRepoImpl) CreatePostFeedback(ctx context.Context, fb *model.PostFeedback) error {
	return s.db.WithContext(ctx).Create(fb).Error
}

func (s *FeedbackRepoImpl) CreateUserFeedback(ctx context.Context, fb *model.UserFeedback) error {
	return s.db.WithContext(ctx).Create(fb).Error
}

func (s *FeedbackRepoImpl) ListPostFeedback(ctx context.Context, limit int) ([]*model.PostFeedback, error) {
	list := make([]*model.PostFeedback, 0)
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *FeedbackRepoImpl) ListUserFeedback(ctx context.Context, limit int) ([]*model.UserFeedback, error) {
	list := make([]*model.UserFeedback, 0)
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Count 两张表的总条数
func (s *FeedbackRepoImpl) Count(ctx context.Context) (int64, error) {
	var posts, users int64
	if err := s.db.WithContext(ctx).Model(&model.PostFeedback{}).Count(&posts).Error; err != nil {
		return 0, err
	}
	if err := s.db.WithContext(ctx).Model(&model.UserFeedback{}).Count(&users).Error; err != nil {
		return 0, err
	}
	return posts + users, nil
}

// RecentComments 该用户最近的非空评论，两种来源按时间合并
func (s *FeedbackRepoImpl) RecentComments(ctx context.Context, userID uint64, limit int) ([]string, error) {
	var rows []struct {
		Text string
	}
	err := s.db.WithContext(ctx).Raw(
		`SELECT text FROM (
			SELECT comment AS text, created_at FROM post_feedback WHERE user_id = ? AND comment <> ''
			UNION ALL
			SELECT message AS text, created_at FROM user_feedback WHERE user_id = ? AND message <> ''
		) t ORDER BY created_at DESC LIMIT ?`,
		userID, userID, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Text)
	}
	return out, nil
}
