package service

import (
	"context"
	"fmt"
	log "log/slog"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/cache"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/learning"
	"Postcraft/internal/repository"
)

const topSignalLimit = 10

type InsightsService interface {
	// EditInsights 失败时返回空统计，不向调用方报错
	EditInsights(ctx context.Context, userID uint64) (*dto.EditInsightsDTO, error)
	Invalidate(ctx context.Context, userID uint64) error
}

type insightsServiceImpl struct {
	editRepo repository.EditRepo
	cache    *cache.Cache[*dto.EditInsightsDTO]
}

func NewInsightsService(editRepo repository.EditRepo, c *cache.Cache[*dto.EditInsightsDTO]) InsightsService {
	return &insightsServiceImpl{editRepo: editRepo, cache: c}
}

func insightsKey(userID uint64) string {
	return fmt.Sprintf("%s%d", consts.InsightsEditsKey, userID)
}

func (s *insightsServiceImpl) EditInsights(ctx context.Context, userID uint64) (*dto.EditInsightsDTO, error) {
	res, err := s.cache.GetOrCompute(ctx, insightsKey(userID), func(ctx context.Context) (*dto.EditInsightsDTO, error) {
		return s.compute(ctx, userID)
	})
	if err != nil {
		log.WarnContext(ctx, "compute edit insights failed, returning empty insights", "user_id", userID, "err", err)
		return emptyInsights(), nil
	}
	return res, nil
}

func (s *insightsServiceImpl) compute(ctx context.Context, userID uint64) (*dto.EditInsightsDTO, error) {
	stats, err := s.editRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	// 与生成时的学习窗口保持一致，actionable 才有意义
	lists, err := s.editRepo.RecentSignals(ctx, userID, learning.DefaultWindow)
	if err != nil {
		return nil, err
	}

	counts := learning.Aggregate(lists, learning.DefaultThreshold)
	out := emptyInsights()
	out.TotalEdits = stats.Total
	out.AvgCharDelta = stats.AvgCharDelta
	for k, v := range stats.Significance {
		out.Significance[k] = v
	}
	for i, c := range counts {
		if i >= topSignalLimit {
			break
		}
		out.TopSignals = append(out.TopSignals, dto.SignalInsightDTO{Signal: c.Signal, Count: c.Count, Actionable: c.Actionable})
	}
	if actionable := learning.Actionable(counts); actionable != nil {
		out.Actionable = actionable
	}
	return out, nil
}

func (s *insightsServiceImpl) Invalidate(ctx context.Context, userID uint64) error {
	return s.cache.Invalidate(ctx, insightsKey(userID))
}

func emptyInsights() *dto.EditInsightsDTO {
	return &dto.EditInsightsDTO{
		Significance: map[string]int64{},
		TopSignals:   []dto.SignalInsightDTO{},
		Actionable:   []string{},
	}
}
