package service

import (
	"context"
	"strconv"
	"time"

	"Postcraft/internal/model"
	"Postcraft/internal/pkg/statecache"
	"Postcraft/internal/repository"
)

// AccountState 鉴权中间件使用的账号状态
type AccountState struct {
	Exists   bool   `json:"exists"`
	Role     string `json:"role"`
	Disabled bool   `json:"disabled"`
}

// AccountHolder 账号状态，角色变更与封禁无需等待 token 过期即可生效
type AccountHolder = statecache.Holder[uint64, AccountState]

// ProfileHolder 用户风格档案，nil 表示用户尚未填写
type ProfileHolder = statecache.Holder[uint64, *model.UserPreferences]

func NewAccountHolder(userRepo repository.UserRepo, ttl time.Duration) *AccountHolder {
	return statecache.New(func(ctx context.Context, id uint64) (AccountState, error) {
		user, err := userRepo.GetUserById(ctx, id)
		if err != nil {
			return AccountState{}, err
		}
		if user == nil {
			return AccountState{}, nil
		}
		return AccountState{Exists: true, Role: user.Role, Disabled: user.Disabled}, nil
	}, ttl, idKey)
}

func NewProfileHolder(prefsRepo repository.PreferencesRepo, ttl time.Duration) *ProfileHolder {
	return statecache.New(func(ctx context.Context, userID uint64) (*model.UserPreferences, error) {
		return prefsRepo.Get(ctx, userID)
	}, ttl, idKey)
}

func idKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
