package service

import (
	"context"
	log "log/slog"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/composer"
	"Postcraft/internal/pkg/learning"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/metrics"
	"Postcraft/internal/pkg/mongo"
	"Postcraft/internal/pkg/promptparse"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/pkg/voice"
	"Postcraft/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxHashtags = 8

type DraftService interface {
	Generate(ctx context.Context, userID uint64, req *dto.GenerateDraftDTO) (*dto.DraftResultDTO, error)
	History(ctx context.Context, userID uint64, limit int) ([]*dto.GenerationHistoryDTO, error)
}

type draftServiceImpl struct {
	llm        llm.Completer
	profiles   *ProfileHolder
	engine     *learning.Engine
	promptRepo repository.PromptRepo
	postRepo   repository.PostRepo
	history    mongo.GenerationHistoryRepo
}

func NewDraftService(
	client llm.Completer,
	profiles *ProfileHolder,
	engine *learning.Engine,
	promptRepo repository.PromptRepo,
	postRepo repository.PostRepo,
	history mongo.GenerationHistoryRepo,
) DraftService {
	return &draftServiceImpl{
		llm:        client,
		profiles:   profiles,
		engine:     engine,
		promptRepo: promptRepo,
		postRepo:   postRepo,
		history:    history,
	}
}

// draftTarget 生成请求关联的选题或已有稿件
type draftTarget struct {
	prompt *model.ContentPrompt
	post   *model.GeneratedPost
}

func (s *draftServiceImpl) Generate(ctx context.Context, userID uint64, req *dto.GenerateDraftDTO) (*dto.DraftResultDTO, error) {
	req.Normalize()
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if !s.llm.Configured() {
		return nil, ErrLLMNotConfigured
	}

	target, err := s.loadTarget(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	category := req.Category
	hook := req.Hook
	in := composer.DraftInput{Title: req.Title, Length: req.Length}
	if target.prompt != nil {
		if category == "" {
			category = target.prompt.Category
		}
		if hook == "" {
			hook = target.prompt.Hook
		}
		in.PromptText = target.prompt.PromptText
		in.Pillar = target.prompt.PillarDescription
	}
	category = promptparse.NormalizeCategory(category)
	length := composer.NormalizeLength(req.Length)
	in.Category, in.Hook, in.Length = category, hook, length

	// 1. 风格档案 -> 指令块
	prefs, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	block := voice.BuildBlock(prefs.VoiceProfile())

	// 2-3. 组装提示词
	system := composer.DraftSystemPrompt(category, block)
	user, err := composer.DraftUserPrompt(in)
	if err != nil {
		return nil, err
	}

	// 4. 调用模型，不重试
	llmReq := llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   composer.MaxTokens(length),
		Temperature: composer.DraftTemperature,
	}
	completion, err := complete(ctx, s.llm, llmKindDraft, llmReq)
	if err != nil {
		return nil, classifyLLMError(err)
	}

	// 5. 按修改历史改写
	learned := s.engine.Apply(ctx, userID, completion.Text)
	if learned.Improvements > 0 {
		metrics.LearningImprovements.Add(float64(learned.Improvements))
	}

	// 6. 标签，失败不影响主流程
	hashtags := []string{}
	if req.WithHashtags == nil || *req.WithHashtags {
		hashtags = s.deriveHashtags(ctx, learned.Content)
	}

	generationID := uuid.NewString()
	meta := model.GenerationMetadata{
		Category:            category,
		Length:              length,
		Hook:                hook,
		PersonalizationUsed: block != "",
		ImprovementsApplied: learned.Improvements,
		AppliedTransforms:   learned.Applied,
		GenerationID:        generationID,
		Model:               completion.Model,
	}

	if err = s.applySideEffects(ctx, target, req, learned.Content, hashtags, meta); err != nil {
		return nil, err
	}

	// 7. 生成记录
	s.recordHistory(ctx, &mongo.GenerationHistory{
		GenerationID: generationID,
		Kind:         mongo.HistoryKindDraft,
		UserID:       userID,
		Model:        completion.Model,
		SystemPrompt: system,
		UserPrompt:   user,
		Params: map[string]string{
			"title":    req.Title,
			"category": category,
			"length":   length,
			"hook":     hook,
		},
		MaxTokens:   llmReq.MaxTokens,
		Temperature: llmReq.Temperature,
		Output:      completion.Text,
		DurationMs:  completion.Duration.Milliseconds(),
	})

	applied := learned.Applied
	if applied == nil {
		applied = []string{}
	}
	return &dto.DraftResultDTO{
		Content:             learned.Content,
		Hashtags:            hashtags,
		PersonalizationUsed: meta.PersonalizationUsed,
		ImprovementsApplied: meta.ImprovementsApplied,
		GenerationID:        generationID,
		Metadata: dto.GenerationMetadata{
			Category:          category,
			Length:            length,
			Hook:              hook,
			AppliedTransforms: applied,
			Model:             completion.Model,
		},
	}, nil
}

func (s *draftServiceImpl) loadTarget(ctx context.Context, userID uint64, req *dto.GenerateDraftDTO) (*draftTarget, error) {
	target := &draftTarget{}
	if req.PostID != nil {
		post, err := s.postRepo.GetByID(ctx, *req.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil || post.UserID != userID {
			return nil, ErrPostNotFound
		}
		target.post = post
	}
	if req.PromptID != nil {
		prompt, err := s.promptRepo.GetByID(ctx, *req.PromptID)
		if err != nil {
			return nil, err
		}
		if prompt == nil || prompt.UserID != userID {
			return nil, ErrPromptNotFound
		}
		target.prompt = prompt
	}
	return target, nil
}

// applySideEffects 重新生成到已有稿件时覆盖稿件内容；全新生成时把来源选题标记为已使用
func (s *draftServiceImpl) applySideEffects(ctx context.Context, target *draftTarget, req *dto.GenerateDraftDTO,
	content string, hashtags []string, meta model.GenerationMetadata) error {
	if target.post != nil {
		post := target.post
		post.Title = req.Title
		post.Content = content
		post.Hashtags = hashtags
		post.GenerationMetadata = datatypes.NewJSONType(meta)
		if req.ScheduledDate != nil {
			post.ScheduledDate = req.ScheduledDate
		}
		return s.postRepo.UpdateContent(ctx, post)
	}
	if target.prompt != nil && !target.prompt.IsUsed {
		return s.promptRepo.MarkUsed(ctx, target.prompt.ID)
	}
	return nil
}

func (s *draftServiceImpl) deriveHashtags(ctx context.Context, content string) []string {
	system, user, err := composer.HashtagPrompts(content)
	if err != nil {
		log.WarnContext(ctx, "compose hashtag prompt failed", "err", err)
		return []string{}
	}
	res, err := complete(ctx, s.llm, llmKindHashtags, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   composer.HashtagMaxTokens,
		Temperature: composer.HashtagTemperature,
	})
	if err != nil {
		log.WarnContext(ctx, "hashtag generation failed, continuing without hashtags", "err", err)
		return []string{}
	}

	tags := util.FirstN(util.ExtractTags(res.Text), maxHashtags)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, "#"+t)
	}
	return out
}

func (s *draftServiceImpl) recordHistory(ctx context.Context, h *mongo.GenerationHistory) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, h); err != nil {
		log.WarnContext(ctx, "save generation history failed", "generation_id", h.GenerationID, "err", err)
	}
}

func (s *draftServiceImpl) History(ctx context.Context, userID uint64, limit int) ([]*dto.GenerationHistoryDTO, error) {
	if s.history == nil {
		return []*dto.GenerationHistoryDTO{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.GenerationHistoryDTO, 0, len(list))
	for _, h := range list {
		out = append(out, &dto.GenerationHistoryDTO{
			GenerationID: h.GenerationID,
			Kind:         h.Kind,
			Model:        h.Model,
			Params:       h.Params,
			DurationMs:   h.DurationMs,
			CreatedAt:    h.CreatedAt.Format(time.DateTime),
		})
	}
	return out, nil
}
