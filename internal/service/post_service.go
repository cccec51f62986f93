package service

import (
	"context"
	"strings"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/composer"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/promptparse"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"

	"gorm.io/datatypes"
)

type PostService interface {
	List(ctx context.Context, userID uint64, req *dto.ListPostsDTO) (*dto.PageResult[*dto.PostDTO], error)
	Get(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error)
	Save(ctx context.Context, userID uint64, req *dto.SavePostDTO) (*dto.PostDTO, error)
	Update(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error)
	UpdateStatus(ctx context.Context, userID, postID uint64, req *dto.UpdatePostStatusDTO) error
	Delete(ctx context.Context, userID, postID uint64) error
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	promptRepo repository.PromptRepo
	edits      EditService
}

// NewPostService edits 可为 nil
func NewPostService(postRepo repository.PostRepo, promptRepo repository.PromptRepo, edits EditService) PostService {
	return &postServiceImpl{postRepo: postRepo, promptRepo: promptRepo, edits: edits}
}

func (s *postServiceImpl) List(ctx context.Context, userID uint64, req *dto.ListPostsDTO) (*dto.PageResult[*dto.PostDTO], error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	req.Normalize()

	posts, total, err := s.postRepo.ListByUser(ctx, userID, req.Status, req.PageSize, req.Offset())
	if err != nil {
		return nil, err
	}
	list := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		list = append(list, toPostDTO(p))
	}
	return &dto.PageResult[*dto.PostDTO]{List: list, Total: total, Page: req.Page}, nil
}

func (s *postServiceImpl) Get(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) Save(ctx context.Context, userID uint64, req *dto.SavePostDTO) (*dto.PostDTO, error) {
	req.Normalize()
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if req.PromptID != nil {
		prompt, err := s.promptRepo.GetByID(ctx, *req.PromptID)
		if err != nil {
			return nil, err
		}
		if prompt == nil || prompt.UserID != userID {
			return nil, ErrPromptNotFound
		}
	}

	meta := model.GenerationMetadata{GenerationID: req.GenerationID}
	if req.Category != "" {
		meta.Category = promptparse.NormalizeCategory(req.Category)
	}
	if req.Length != "" {
		meta.Length = composer.NormalizeLength(req.Length)
	}

	post := &model.GeneratedPost{
		UserID:             userID,
		Title:              req.Title,
		Content:            req.Content,
		Status:             consts.PostStatusDraft,
		PromptID:           req.PromptID,
		GenerationMetadata: datatypes.NewJSONType(meta),
		Hashtags:           normalizeHashtags(req.Hashtags),
		ScheduledDate:      req.ScheduledDate,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) Update(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Hashtags != nil {
		post.Hashtags = normalizeHashtags(req.Hashtags)
	}
	if req.ScheduledDate != nil {
		post.ScheduledDate = req.ScheduledDate
		if *req.ScheduledDate == "" {
			post.ScheduledDate = nil
		}
	}

	if err = s.postRepo.UpdateContent(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

// UpdateStatus 只有草稿可以转为 used / archived
func (s *postServiceImpl) UpdateStatus(ctx context.Context, userID, postID uint64, req *dto.UpdatePostStatusDTO) error {
	if err := util.ValidateDTO(req); err != nil {
		return err
	}
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return err
	}
	if post.Status != consts.PostStatusDraft {
		return ErrPostNotDraft
	}
	n, err := s.postRepo.UpdateStatus(ctx, postID, userID, consts.PostStatusDraft, req.Status)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotDraft
	}
	return nil
}

func (s *postServiceImpl) Delete(ctx context.Context, userID, postID uint64) error {
	n, err := s.postRepo.Delete(ctx, postID, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	// 已删除稿件的待落库修改不再写入
	if s.edits != nil {
		s.edits.Discard(userID, postID)
	}
	return nil
}

func (s *postServiceImpl) ownedPost(ctx context.Context, userID, postID uint64) (*model.GeneratedPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// normalizeHashtags 统一加 # 前缀并去重
func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		for _, name := range util.ExtractTags("#" + trimHash(t)) {
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, "#"+name)
		}
	}
	return out
}

func trimHash(s string) string {
	return strings.TrimLeft(strings.TrimSpace(s), "#")
}

func toPostDTO(p *model.GeneratedPost) *dto.PostDTO {
	meta := p.GenerationMetadata.Data()
	hashtags := []string(p.Hashtags)
	if hashtags == nil {
		hashtags = []string{}
	}
	return &dto.PostDTO{
		ID:                  p.ID,
		Title:               p.Title,
		Content:             p.Content,
		Status:              p.Status,
		PromptID:            p.PromptID,
		Hashtags:            hashtags,
		ScheduledDate:       p.ScheduledDate,
		Category:            meta.Category,
		PersonalizationUsed: meta.PersonalizationUsed,
		ImprovementsApplied: meta.ImprovementsApplied,
		GenerationID:        meta.GenerationID,
		CreatedAt:           p.CreatedAt.Format(time.DateTime),
		UpdatedAt:           p.UpdatedAt.Format(time.DateTime),
	}
}
