package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promptFixture struct {
	llm      *fakeLLM
	prompts  *fakePromptRepo
	feedback *fakeFeedbackRepo
	prefs    *fakePrefsRepo
	history  *fakeHistory
	mr       *miniredis.Miniredis
	svc      *promptServiceImpl
}

func newPromptFixture(t *testing.T, client *fakeLLM, prompts ...*model.ContentPrompt) *promptFixture {
	t.Helper()
	f := &promptFixture{
		mr:       startRedis(t),
		llm:      client,
		prompts:  newFakePromptRepo(prompts...),
		feedback: &fakeFeedbackRepo{},
		prefs: newFakePrefsRepo(&model.UserPreferences{
			UserID:         1,
			ContentPillars: []string{"Leadership", "", "Hiring"},
			Industry:       "SaaS",
			TargetAudience: "founders",
		}),
		history: &fakeHistory{},
	}
	users := newFakeUserRepo(&model.User{ID: 1, Role: consts.RoleUser}, &model.User{ID: 9, Role: consts.RoleAdmin})
	svc := NewPromptService(client, NewProfileHolder(f.prefs, time.Minute), f.prompts, f.feedback, users, f.history, time.UTC)
	f.svc = svc.(*promptServiceImpl)
	// 2026-10-16 是周五
	f.svc.now = func() time.Time { return time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC) }
	return f
}

func batchText(n int) string {
	blocks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, fmt.Sprintf("Category: trend\nPillar: %d\nHook: Hook %d\nPrompt: Prompt body %d", i%3+1, i, i))
	}
	return strings.Join(blocks, "\n---\n")
}

func TestGenerateBatch_ReplacesWithScheduledPrompts(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(reply{text: batchText(12)}))
	f.feedback.comments = []string{"more stories please"}

	res, err := f.svc.GenerateBatch(context.Background(), 9, &dto.GeneratePromptsDTO{UserID: 1, IncludeFeedback: true})
	require.NoError(t, err)
	assert.Equal(t, &dto.GeneratePromptsResult{Success: true, GeneratedCount: 12, Message: "Generated 12 prompts"}, res)

	require.Len(t, f.prompts.replaced, 1)
	batch := f.prompts.replaced[0]
	require.Len(t, batch, 12)

	wantDates := []string{
		"2026-10-16", "2026-10-16", "2026-10-19", "2026-10-19", "2026-10-21", "2026-10-21",
		"2026-10-23", "2026-10-23", "2026-10-26", "2026-10-26", "2026-10-28", "2026-10-28",
	}
	for i, p := range batch {
		assert.Equal(t, wantDates[i], *p.ScheduledDate)
		assert.Equal(t, consts.PromptSourceAdmin, p.Source)
		assert.Equal(t, uint64(9), p.CreatedBy)
		assert.Equal(t, uint64(1), p.UserID)
		assert.False(t, p.IsUsed)
	}
	assert.Equal(t, "Industry trend analysis", batch[0].Category)
	assert.Equal(t, "Leadership", batch[0].PillarDescription)

	require.Len(t, f.llm.calls, 1)
	call := f.llm.calls[0]
	assert.Equal(t, 3000, call.MaxTokens)
	assert.Equal(t, 0.8, call.Temperature)
	assert.Contains(t, call.User, "more stories please")
	assert.Contains(t, call.User, "SaaS")

	require.Len(t, f.history.saved, 1)
	assert.Equal(t, "0", f.history.saved[0].Params["fallbacks"])
}

func TestGenerateBatch_PadsWithFallbacks(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(reply{text: "Sorry, I cannot help with that."}))

	res, err := f.svc.GenerateBatch(context.Background(), 9, &dto.GeneratePromptsDTO{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 12, res.GeneratedCount)
	assert.Equal(t, "12", f.history.saved[0].Params["fallbacks"])
}

func TestGenerateBatch_LockHeld(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(reply{text: batchText(12)}))
	require.NoError(t, f.mr.Set(consts.PromptGenerateLock+"1", "someone-else"))

	_, err := f.svc.GenerateBatch(context.Background(), 9, &dto.GeneratePromptsDTO{UserID: 1})
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	assert.Empty(t, f.llm.calls)
	assert.Empty(t, f.prompts.replaced)
}

func TestGenerateBatch_ReleasesLock(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(reply{text: batchText(12)}))
	_, err := f.svc.GenerateBatch(context.Background(), 9, &dto.GeneratePromptsDTO{UserID: 1})
	require.NoError(t, err)
	assert.False(t, f.mr.Exists(consts.PromptGenerateLock+"1"))
}

func TestGenerateBatch_Errors(t *testing.T) {
	ctx := context.Background()

	f := newPromptFixture(t, newFakeLLM())
	f.llm.configured = false
	_, err := f.svc.GenerateBatch(ctx, 9, &dto.GeneratePromptsDTO{UserID: 1})
	assert.ErrorIs(t, err, ErrLLMNotConfigured)

	f = newPromptFixture(t, newFakeLLM(reply{text: batchText(12)}))
	_, err = f.svc.GenerateBatch(ctx, 9, &dto.GeneratePromptsDTO{UserID: 404})
	assert.ErrorIs(t, err, ErrUserNotFound)

	f = newPromptFixture(t, newFakeLLM(reply{err: &llm.UpstreamError{StatusCode: 429, Code: "insufficient_quota"}}))
	_, err = f.svc.GenerateBatch(ctx, 9, &dto.GeneratePromptsDTO{UserID: 1})
	assert.ErrorIs(t, err, ErrLLMQuotaExceeded)
	assert.Empty(t, f.prompts.replaced)
}

func TestUpdateSchedule_Rules(t *testing.T) {
	prompts := []*model.ContentPrompt{
		{ID: 1, UserID: 1},
		{ID: 2, UserID: 1, IsUsed: true},
	}
	ctx := context.Background()

	cases := []struct {
		name    string
		id      uint64
		req     dto.UpdateScheduleDTO
		pushed  int64
		wantErr error
	}{
		{"used prompt", 2, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-19")}, 0, ErrPromptUsed},
		{"not owned", 3, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-19")}, 0, ErrPromptNotFound},
		{"tuesday pushed", 1, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-20"), PushedToCalendar: true}, 0, ErrScheduleNotCadence},
		{"slot full", 1, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-19"), PushedToCalendar: true}, 2, ErrScheduleSlotFull},
		{"push without date", 1, dto.UpdateScheduleDTO{PushedToCalendar: true}, 0, ErrParamInvalid},
		{"tuesday draft date", 1, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-20")}, 0, nil},
		{"one slot left", 1, dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("2026-10-19"), PushedToCalendar: true}, 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPromptFixture(t, newFakeLLM(), prompts...)
			f.prompts.pushedCount = tc.pushed

			req := tc.req
			out, err := f.svc.UpdateSchedule(ctx, 1, tc.id, &req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, f.prompts.scheduled)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tc.req.ScheduledDate, *out.ScheduledDate)
			assert.Equal(t, tc.req.PushedToCalendar, out.PushedToCalendar)
		})
	}
}

func TestUpdateSchedule_EmptyDateClears(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(), &model.ContentPrompt{ID: 1, UserID: 1, ScheduledDate: util.PtrString("2026-10-19")})

	out, err := f.svc.UpdateSchedule(context.Background(), 1, 1, &dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("")})
	require.NoError(t, err)
	assert.Nil(t, out.ScheduledDate)
	date, ok := f.prompts.scheduled[1]
	require.True(t, ok)
	assert.Nil(t, date)

	_, err = f.svc.UpdateSchedule(context.Background(), 1, 1, &dto.UpdateScheduleDTO{ScheduledDate: util.PtrString("19/10/2026")})
	var pe *util.ParamError
	assert.ErrorAs(t, err, &pe)
}

func TestArchiveAndArchiveStale(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(), &model.ContentPrompt{ID: 1, UserID: 1}, &model.ContentPrompt{ID: 2, UserID: 1, IsUsed: true})
	ctx := context.Background()

	require.NoError(t, f.svc.Archive(ctx, 1, 1))
	require.NoError(t, f.svc.Archive(ctx, 1, 2))
	assert.Equal(t, []uint64{1}, f.prompts.marked)
	assert.ErrorIs(t, f.svc.Archive(ctx, 2, 1), ErrPromptNotFound)

	n, err := f.svc.ArchiveStale(ctx, 14)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []string{"2026-10-02"}, f.prompts.archived)
}

func TestListPrompts(t *testing.T) {
	f := newPromptFixture(t, newFakeLLM(),
		&model.ContentPrompt{ID: 1, UserID: 1, PromptText: "a", ScheduledDate: util.PtrString("2026-10-19")},
		&model.ContentPrompt{ID: 2, UserID: 1, IsUsed: true},
	)
	list, err := f.svc.List(context.Background(), 1, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint64(1), list[0].ID)
	assert.Equal(t, "2026-10-19", *list[0].ScheduledDate)
}
