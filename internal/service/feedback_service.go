package service

import (
	"context"
	"sort"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"
)

type FeedbackService interface {
	SubmitPostFeedback(ctx context.Context, userID, postID uint64, req *dto.PostFeedbackDTO) error
	SubmitUserFeedback(ctx context.Context, userID uint64, req *dto.UserFeedbackDTO) error
	// ListAll 管理端合并列表，按时间倒序
	ListAll(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.FeedbackItemDTO], error)
}

type feedbackServiceImpl struct {
	feedbackRepo repository.FeedbackRepo
	postRepo     repository.PostRepo
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepo, postRepo repository.PostRepo) FeedbackService {
	return &feedbackServiceImpl{feedbackRepo: feedbackRepo, postRepo: postRepo}
}

func (s *feedbackServiceImpl) SubmitPostFeedback(ctx context.Context, userID, postID uint64, req *dto.PostFeedbackDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.UserID != userID {
		return ErrPostNotFound
	}

	err = s.feedbackRepo.CreatePostFeedback(ctx, &model.PostFeedback{
		UserID:  userID,
		PostID:  postID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrFeedbackExists
		}
		return err
	}
	return nil
}

func (s *feedbackServiceImpl) SubmitUserFeedback(ctx context.Context, userID uint64, req *dto.UserFeedbackDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	return s.feedbackRepo.CreateUserFeedback(ctx, &model.UserFeedback{
		UserID:   userID,
		Category: req.Category,
		Message:  req.Message,
	})
}

// ListAll 两张表各取前 page*size 条后合并排序再切页
func (s *feedbackServiceImpl) ListAll(ctx context.Context, page *dto.PageDTO) (*dto.PageResult[*dto.FeedbackItemDTO], error) {
	if err := util.ValidateDTO(page); err != nil {
		return nil, err
	}
	page.Normalize()
	window := page.Page * page.PageSize

	posts, err := s.feedbackRepo.ListPostFeedback(ctx, window)
	if err != nil {
		return nil, err
	}
	users, err := s.feedbackRepo.ListUserFeedback(ctx, window)
	if err != nil {
		return nil, err
	}
	total, err := s.feedbackRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	type item struct {
		at  time.Time
		dto *dto.FeedbackItemDTO
	}
	merged := make([]item, 0, len(posts)+len(users))
	for _, p := range posts {
		merged = append(merged, item{at: p.CreatedAt, dto: &dto.FeedbackItemDTO{
			Source:    consts.FeedbackSourcePost,
			ID:        p.ID,
			UserID:    p.UserID,
			PostID:    util.PtrUint64(p.PostID),
			Rating:    util.PtrInt(p.Rating),
			Comment:   p.Comment,
			CreatedAt: p.CreatedAt.Format(time.DateTime),
		}})
	}
	for _, u := range users {
		merged = append(merged, item{at: u.CreatedAt, dto: &dto.FeedbackItemDTO{
			Source:    consts.FeedbackSourceUser,
			ID:        u.ID,
			UserID:    u.UserID,
			Category:  u.Category,
			Message:   u.Message,
			CreatedAt: u.CreatedAt.Format(time.DateTime),
		}})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].at.Equal(merged[j].at) {
			return merged[i].at.After(merged[j].at)
		}
		if merged[i].dto.Source != merged[j].dto.Source {
			return merged[i].dto.Source < merged[j].dto.Source
		}
		return merged[i].dto.ID > merged[j].dto.ID
	})

	list := make([]*dto.FeedbackItemDTO, 0, page.PageSize)
	for i := page.Offset(); i < len(merged) && len(list) < page.PageSize; i++ {
		list = append(list, merged[i].dto)
	}
	return &dto.PageResult[*dto.FeedbackItemDTO]{List: list, Total: total, Page: page.Page}, nil
}
