package job

import (
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/logger"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const staleJobTimeout = 5 * time.Minute

// StalePromptJob 归档过期未推送的选题，多实例部署时靠 redis 锁保证只跑一份
type StalePromptJob struct {
	promptSvc service.PromptService
	graceDays int
}

func NewStalePromptJob(promptSvc service.PromptService, graceDays int) *StalePromptJob {
	return &StalePromptJob{
		promptSvc: promptSvc,
		graceDays: graceDays,
	}
}

func (s *StalePromptJob) Run() {
	ctx, cancel := context.WithTimeout(logger.NewTraceContext(context.Background(), "job-stale-prompt"), staleJobTimeout)
	defer cancel()

	lockValue := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.StalePromptJobLock, lockValue, staleJobTimeout, 1)
	if err != nil {
		log.ErrorContext(ctx, "acquire stale prompt job lock error", "err", err)
		return
	}
	if !ok {
		log.InfoContext(ctx, "stale prompt job already running elsewhere")
		return
	}
	defer redis.UnLock(ctx, consts.StalePromptJobLock, lockValue)

	archived, err := s.promptSvc.ArchiveStale(ctx, s.graceDays)
	if err != nil {
		log.ErrorContext(ctx, "archive stale prompts error", "err", err)
		return
	}
	log.InfoContext(ctx, "StalePromptJob finished", "archived", archived, "grace_days", s.graceDays)
}
