package service

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/composer"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/mongo"
	"Postcraft/internal/pkg/promptparse"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/pkg/schedule"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/pkg/voice"
	"Postcraft/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	feedbackContextLimit = 10
	generateLockTTL      = 2 * time.Minute
)

type PromptService interface {
	GenerateBatch(ctx context.Context, adminID uint64, req *dto.GeneratePromptsDTO) (*dto.GeneratePromptsResult, error)
	List(ctx context.Context, userID uint64, includeUsed bool) ([]*dto.PromptDTO, error)
	UpdateSchedule(ctx context.Context, userID, promptID uint64, req *dto.UpdateScheduleDTO) (*dto.PromptDTO, error)
	Archive(ctx context.Context, userID, promptID uint64) error
	ArchiveStale(ctx context.Context, graceDays int) (int64, error)
}

type promptServiceImpl struct {
	llm          llm.Completer
	profiles     *ProfileHolder
	promptRepo   repository.PromptRepo
	feedbackRepo repository.FeedbackRepo
	userRepo     repository.UserRepo
	history      mongo.GenerationHistoryRepo
	loc          *time.Location
	now          func() time.Time
}

func NewPromptService(
	client llm.Completer,
	profiles *ProfileHolder,
	promptRepo repository.PromptRepo,
	feedbackRepo repository.FeedbackRepo,
	userRepo repository.UserRepo,
	history mongo.GenerationHistoryRepo,
	loc *time.Location,
) PromptService {
	if loc == nil {
		loc = time.UTC
	}
	return &promptServiceImpl{
		llm:          client,
		profiles:     profiles,
		promptRepo:   promptRepo,
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		history:      history,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *promptServiceImpl) today() time.Time {
	return s.now().In(s.loc)
}

// GenerateBatch 为用户生成 12 条选题并替换其未使用的管理员选题
func (s *promptServiceImpl) GenerateBatch(ctx context.Context, adminID uint64, req *dto.GeneratePromptsDTO) (*dto.GeneratePromptsResult, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}
	if !s.llm.Configured() {
		return nil, ErrLLMNotConfigured
	}

	user, err := s.userRepo.GetUserById(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	lockKey := fmt.Sprintf("%s%d", consts.PromptGenerateLock, req.UserID)
	token := uuid.NewString()
	locked, err := redis.TryLock(ctx, lockKey, token, generateLockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrGenerationInProgress
	}
	defer redis.UnLock(context.WithoutCancel(ctx), lockKey, token)

	prefs, err := s.profiles.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	pillars := prefs.Pillars()

	var feedback []string
	if req.IncludeFeedback {
		feedback, err = s.feedbackRepo.RecentComments(ctx, req.UserID, feedbackContextLimit)
		if err != nil {
			return nil, err
		}
	}

	in := composer.BatchInput{
		Pillars:    pillars,
		Feedback:   feedback,
		VoiceBlock: voice.BuildBlock(prefs.VoiceProfile()),
	}
	if prefs != nil {
		in.Industry = prefs.Industry
		in.Audience = prefs.TargetAudience
	}
	system, userPrompt, err := composer.BatchPrompts(in)
	if err != nil {
		return nil, err
	}

	llmReq := llm.Request{
		System:      system,
		User:        userPrompt,
		MaxTokens:   composer.BatchMaxTokens,
		Temperature: composer.BatchTemperature,
	}
	completion, err := complete(ctx, s.llm, llmKindBatch, llmReq)
	if err != nil {
		return nil, classifyLLMError(err)
	}

	drafts, err := promptparse.Parse(completion.Text, pillars)
	if err != nil {
		log.ErrorContext(ctx, "parse prompt batch failed", "user_id", req.UserID, "err", err)
		return nil, ErrMalformedOutput
	}

	dates := schedule.Allocate(len(drafts), s.today())
	prompts := make([]*model.ContentPrompt, 0, len(drafts))
	fallbacks := 0
	for i, d := range drafts {
		if d.Fallback {
			fallbacks++
		}
		prompts = append(prompts, &model.ContentPrompt{
			UserID:            req.UserID,
			Category:          d.Category,
			PillarNumber:      d.PillarNumber,
			PillarDescription: d.PillarDescription,
			PromptText:        d.PromptText,
			Hook:              d.Hook,
			ScheduledDate:     util.PtrString(dates[i]),
			Source:            consts.PromptSourceAdmin,
			CreatedBy:         adminID,
		})
	}

	if err = s.promptRepo.ReplaceAdminBatch(ctx, req.UserID, prompts); err != nil {
		return nil, err
	}

	generationID := uuid.NewString()
	if s.history != nil {
		err = s.history.Save(ctx, &mongo.GenerationHistory{
			GenerationID: generationID,
			Kind:         mongo.HistoryKindBatch,
			UserID:       req.UserID,
			Model:        completion.Model,
			SystemPrompt: system,
			UserPrompt:   userPrompt,
			Params: map[string]string{
				"admin_id":         fmt.Sprint(adminID),
				"include_feedback": fmt.Sprint(req.IncludeFeedback),
				"fallbacks":        fmt.Sprint(fallbacks),
			},
			MaxTokens:   llmReq.MaxTokens,
			Temperature: llmReq.Temperature,
			Output:      completion.Text,
			DurationMs:  completion.Duration.Milliseconds(),
		})
		if err != nil {
			log.WarnContext(ctx, "save generation history failed", "generation_id", generationID, "err", err)
		}
	}

	log.InfoContext(ctx, "prompt batch generated", "user_id", req.UserID, "admin_id", adminID,
		"count", len(prompts), "fallbacks", fallbacks)
	return &dto.GeneratePromptsResult{
		Success:        true,
		GeneratedCount: len(prompts),
		Message:        fmt.Sprintf("Generated %d prompts", len(prompts)),
	}, nil
}

func (s *promptServiceImpl) List(ctx context.Context, userID uint64, includeUsed bool) ([]*dto.PromptDTO, error) {
	prompts, err := s.promptRepo.ListByUser(ctx, userID, includeUsed)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PromptDTO, 0, len(prompts))
	if err = copier.Copy(&out, &prompts); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSchedule 推送到日历时日期必须是发布日，且当天其它已推送选题少于 2 条
func (s *promptServiceImpl) UpdateSchedule(ctx context.Context, userID, promptID uint64, req *dto.UpdateScheduleDTO) (*dto.PromptDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	prompt, err := s.ownedPrompt(ctx, userID, promptID)
	if err != nil {
		return nil, err
	}
	if prompt.IsUsed {
		return nil, ErrPromptUsed
	}

	if req.ScheduledDate == nil || *req.ScheduledDate == "" {
		if req.PushedToCalendar {
			return nil, ErrParamInvalid
		}
		req.ScheduledDate = nil
	} else if req.PushedToCalendar {
		ok, err := schedule.ValidateCadenceDate(*req.ScheduledDate)
		if err != nil {
			return nil, ErrParamInvalid
		}
		if !ok {
			return nil, ErrScheduleNotCadence
		}
		count, err := s.promptRepo.CountPushedOnDate(ctx, userID, *req.ScheduledDate, promptID)
		if err != nil {
			return nil, err
		}
		if count >= schedule.SlotsPerDay {
			return nil, ErrScheduleSlotFull
		}
	}

	if err = s.promptRepo.UpdateSchedule(ctx, promptID, req.ScheduledDate, req.PushedToCalendar); err != nil {
		return nil, err
	}
	prompt.ScheduledDate = req.ScheduledDate
	prompt.PushedToCalendar = req.PushedToCalendar

	out := &dto.PromptDTO{}
	if err = copier.Copy(out, prompt); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *promptServiceImpl) Archive(ctx context.Context, userID, promptID uint64) error {
	prompt, err := s.ownedPrompt(ctx, userID, promptID)
	if err != nil {
		return err
	}
	if prompt.IsUsed {
		return nil
	}
	return s.promptRepo.MarkUsed(ctx, promptID)
}

// ArchiveStale 归档排期日期早于 today - graceDays 且未推送的选题
func (s *promptServiceImpl) ArchiveStale(ctx context.Context, graceDays int) (int64, error) {
	if graceDays < 0 {
		graceDays = 0
	}
	before := schedule.DateOnly(s.today()).AddDate(0, 0, -graceDays).Format(consts.DateLayout)
	return s.promptRepo.ArchiveStale(ctx, before)
}

func (s *promptServiceImpl) ownedPrompt(ctx context.Context, userID, promptID uint64) (*model.ContentPrompt, error) {
	prompt, err := s.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if prompt == nil || prompt.UserID != userID {
		return nil, ErrPromptNotFound
	}
	return prompt, nil
}
