package service

import (
	"context"
	"testing"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesGet_EmptyWhenMissing(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := NewPreferencesService(repo, NewProfileHolder(repo, time.Minute))

	res, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &dto.PreferencesDTO{}, res)
}

func TestPreferencesUpdate_CleansListsAndRefreshesProfile(t *testing.T) {
	repo := newFakePrefsRepo(&model.UserPreferences{UserID: 1, Tone: "formal"})
	profiles := NewProfileHolder(repo, time.Hour)
	svc := NewPreferencesService(repo, profiles)
	ctx := context.Background()

	cached, err := profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "formal", cached.Tone)

	res, err := svc.Update(ctx, 1, &dto.PreferencesDTO{
		FrequentWords:  []string{" leverage ", "", "ship"},
		ContentPillars: []string{"Leadership", "  "},
		Tone:           "friendly",
		Directness:     util.PtrInt(7),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"leverage", "ship"}, res.FrequentWords)
	assert.Equal(t, []string{"Leadership"}, res.ContentPillars)
	assert.Equal(t, "friendly", res.Tone)
	require.NotNil(t, res.Directness)
	assert.Equal(t, 7, *res.Directness)

	require.Len(t, repo.upserted, 1)
	assert.Equal(t, uint64(1), repo.upserted[0].UserID)

	// 缓存中的档案已经换成新值，不必等 TTL
	cached, err = profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "friendly", cached.Tone)
}

func TestPreferencesUpdate_Validation(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := NewPreferencesService(repo, NewProfileHolder(repo, time.Minute))

	_, err := svc.Update(context.Background(), 1, &dto.PreferencesDTO{Energy: util.PtrInt(11)})
	var pe *util.ParamError
	assert.ErrorAs(t, err, &pe)

	_, err = svc.Update(context.Background(), 1, &dto.PreferencesDTO{ContentPillars: []string{"a", "b", "c", "d"}})
	assert.ErrorAs(t, err, &pe)
	assert.Empty(t, repo.upserted)
}
