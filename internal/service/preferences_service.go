package service

import (
	"context"
	log "log/slog"
	"strings"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"

	"github.com/jinzhu/copier"
)

type PreferencesService interface {
	Get(ctx context.Context, userID uint64) (*dto.PreferencesDTO, error)
	Update(ctx context.Context, userID uint64, req *dto.PreferencesDTO) (*dto.PreferencesDTO, error)
}

type preferencesServiceImpl struct {
	prefsRepo repository.PreferencesRepo
	profiles  *ProfileHolder
}

func NewPreferencesService(prefsRepo repository.PreferencesRepo, profiles *ProfileHolder) PreferencesService {
	return &preferencesServiceImpl{prefsRepo: prefsRepo, profiles: profiles}
}

func (s *preferencesServiceImpl) Get(ctx context.Context, userID uint64) (*dto.PreferencesDTO, error) {
	prefs, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.PreferencesDTO{}
	if prefs == nil {
		return out, nil
	}
	if err = copier.Copy(out, prefs); err != nil {
		return nil, err
	}
	return out, nil
}

// Update 全量覆盖，成功后刷新缓存的风格档案
func (s *preferencesServiceImpl) Update(ctx context.Context, userID uint64, req *dto.PreferencesDTO) (*dto.PreferencesDTO, error) {
	if err := util.ValidateDTO(req); err != nil {
		return nil, err
	}

	prefs := &model.UserPreferences{}
	if err := copier.Copy(prefs, req); err != nil {
		return nil, err
	}
	prefs.UserID = userID
	prefs.FrequentWords = cleanList(req.FrequentWords)
	prefs.IndustryJargon = cleanList(req.IndustryJargon)
	prefs.SignatureExpressions = cleanList(req.SignatureExpressions)
	prefs.NeverUsePhrases = cleanList(req.NeverUsePhrases)
	prefs.PreferredHooks = cleanList(req.PreferredHooks)
	prefs.StructurePatterns = cleanList(req.StructurePatterns)
	prefs.ContentPillars = cleanList(req.ContentPillars)

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	if _, err := s.profiles.Invalidate(ctx, userID); err != nil {
		// 缓存下次读取时重新拉取
		s.profiles.Forget(userID)
		log.WarnContext(ctx, "refresh voice profile failed", "user_id", userID, "err", err)
	}
	return s.Get(ctx, userID)
}

// cleanList 去掉空白项，保持顺序
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
