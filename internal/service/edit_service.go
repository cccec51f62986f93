package service

import (
	"context"
	"fmt"
	log "log/slog"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/learning"
	"Postcraft/internal/pkg/metrics"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"
)

type EditService interface {
	// Track 接收一次修改提交，防抖后异步落库；除参数错误外从不返回错误
	Track(ctx context.Context, userID uint64, req *dto.TrackEditDTO) error
	// Record 同步分析并保存一次修改
	Record(ctx context.Context, userID uint64, req *dto.TrackEditDTO) (*model.ContentEdit, error)
	// Discard 丢弃某篇稿件尚在防抖窗口内的提交，稿件删除时调用
	Discard(userID, postID uint64)
	// Flush 立即落库所有等待中的提交
	Flush()
}

type editServiceImpl struct {
	editRepo  repository.EditRepo
	postRepo  repository.PostRepo
	insights  InsightsService
	debouncer *util.Debouncer
}

func NewEditService(editRepo repository.EditRepo, postRepo repository.PostRepo, insights InsightsService, debouncer *util.Debouncer) EditService {
	return &editServiceImpl{
		editRepo:  editRepo,
		postRepo:  postRepo,
		insights:  insights,
		debouncer: debouncer,
	}
}

func (s *editServiceImpl) Track(ctx context.Context, userID uint64, req *dto.TrackEditDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	if req.OriginalContent == req.EditedContent {
		metrics.EditsTracked.WithLabelValues("unchanged").Inc()
		return nil
	}

	submission := *req
	bg := context.WithoutCancel(ctx)
	s.debouncer.Trigger(editKey(userID, req), func() {
		if _, err := s.Record(bg, userID, &submission); err != nil {
			metrics.EditsTracked.WithLabelValues("failed").Inc()
			log.ErrorContext(bg, "record content edit failed", "user_id", userID, "err", err)
			return
		}
		metrics.EditsTracked.WithLabelValues("recorded").Inc()
	})
	return nil
}

// editKey 同一用户同一稿件（或同一次生成）的提交共用一个防抖计时器
func editKey(userID uint64, req *dto.TrackEditDTO) string {
	switch {
	case req.PostID != nil:
		return postEditKey(userID, *req.PostID)
	case req.GenerationID != "":
		return fmt.Sprintf("%d:gen:%s", userID, req.GenerationID)
	default:
		return fmt.Sprintf("%d:draft", userID)
	}
}

func postEditKey(userID, postID uint64) string {
	return fmt.Sprintf("%d:post:%d", userID, postID)
}

func (s *editServiceImpl) Record(ctx context.Context, userID uint64, req *dto.TrackEditDTO) (*model.ContentEdit, error) {
	if req.OriginalContent == req.EditedContent {
		return nil, nil
	}

	postID := req.PostID
	if postID != nil {
		post, err := s.postRepo.GetByID(ctx, *postID)
		if err != nil {
			return nil, err
		}
		if post == nil || post.UserID != userID {
			postID = nil
		}
	}

	a := learning.Analyze(req.OriginalContent, req.EditedContent)
	edit := &model.ContentEdit{
		UserID:          userID,
		PostID:          postID,
		OriginalContent: req.OriginalContent,
		EditedContent:   req.EditedContent,
		CharDelta:       a.CharDelta,
		EditType:        a.EditType,
		Significance:    a.Significance,
		LearningSignals: a.Signals,
		GenerationID:    req.GenerationID,
	}
	if err := s.editRepo.Create(ctx, edit); err != nil {
		return nil, err
	}

	if s.insights != nil {
		if err := s.insights.Invalidate(ctx, userID); err != nil {
			log.WarnContext(ctx, "invalidate edit insights failed", "user_id", userID, "err", err)
		}
	}
	return edit, nil
}

func (s *editServiceImpl) Discard(userID, postID uint64) {
	s.debouncer.Cancel(postEditKey(userID, postID))
}

func (s *editServiceImpl) Flush() {
	n := s.debouncer.Pending()
	s.debouncer.Flush()
	if n > 0 {
		log.Info("flushed pending content edits", "count", n)
	}
}
