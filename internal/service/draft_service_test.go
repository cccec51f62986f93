package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/learning"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftFixture struct {
	llm     *fakeLLM
	prompts *fakePromptRepo
	posts   *fakePostRepo
	edits   *fakeEditRepo
	prefs   *fakePrefsRepo
	history *fakeHistory
	svc     DraftService
}

func newDraftFixture(client *fakeLLM) *draftFixture {
	f := &draftFixture{
		llm: client,
		prompts: newFakePromptRepo(&model.ContentPrompt{
			ID: 11, UserID: 1, Category: "Personal story post", Hook: "I almost quit.",
			PromptText: "Tell the story of the week you nearly quit.", PillarDescription: "Career growth",
		}),
		posts:   newFakePostRepo(&model.GeneratedPost{ID: 21, UserID: 1, Title: "old", Content: "old content", Status: "draft"}),
		edits:   &fakeEditRepo{},
		prefs:   newFakePrefsRepo(),
		history: &fakeHistory{},
	}
	profiles := NewProfileHolder(f.prefs, time.Minute)
	engine := learning.NewEngine(f.edits)
	f.svc = NewDraftService(client, profiles, engine, f.prompts, f.posts, f.history)
	return f
}

func TestDraftGenerate_FromPromptMarksUsed(t *testing.T) {
	f := newDraftFixture(newFakeLLM(
		reply{text: "Three years ago I nearly walked out."},
		reply{text: "#Leadership #CareerGrowth #leadership #Resilience"},
	))

	res, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{
		PromptID: util.PtrUint64(11),
		Title:    "Almost quitting",
	})
	require.NoError(t, err)

	assert.Equal(t, "Three years ago I nearly walked out.", res.Content)
	assert.Equal(t, []string{"#Leadership", "#CareerGrowth", "#Resilience"}, res.Hashtags)
	assert.False(t, res.PersonalizationUsed)
	assert.Equal(t, 0, res.ImprovementsApplied)
	assert.NotEmpty(t, res.GenerationID)
	assert.Equal(t, "Personal story post", res.Metadata.Category)
	assert.Equal(t, "medium", res.Metadata.Length)
	assert.Equal(t, "I almost quit.", res.Metadata.Hook)

	assert.Equal(t, []uint64{11}, f.prompts.marked)
	require.Len(t, f.llm.calls, 2)
	assert.Equal(t, 700, f.llm.calls[0].MaxTokens)
	assert.Contains(t, f.llm.calls[0].User, "Tell the story of the week you nearly quit.")

	require.Len(t, f.history.saved, 1)
	assert.Equal(t, res.GenerationID, f.history.saved[0].GenerationID)
}

func TestDraftGenerate_RegenerateIntoPostDoesNotMarkPrompt(t *testing.T) {
	f := newDraftFixture(newFakeLLM(reply{text: "Fresh take."}))

	res, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{
		PromptID:      util.PtrUint64(11),
		PostID:        util.PtrUint64(21),
		Title:         "Regenerated",
		Length:        "short",
		ScheduledDate: util.PtrString("2026-10-19"),
		WithHashtags:  new(bool),
	})
	require.NoError(t, err)

	assert.Empty(t, f.prompts.marked)
	require.Len(t, f.posts.updated, 1)
	post := f.posts.updated[0]
	assert.Equal(t, "Fresh take.", post.Content)
	assert.Equal(t, "Regenerated", post.Title)
	assert.Equal(t, "2026-10-19", *post.ScheduledDate)
	assert.Equal(t, res.GenerationID, post.GenerationMetadata.Data().GenerationID)
	assert.Equal(t, []string{}, res.Hashtags)
	// 不生成标签时只调用一次模型
	require.Len(t, f.llm.calls, 1)
	assert.Equal(t, 500, f.llm.calls[0].MaxTokens)
}

func TestDraftGenerate_PersonalizationAndLearning(t *testing.T) {
	f := newDraftFixture(newFakeLLM(reply{text: "Great quarter for the team."}, reply{text: ""}))
	f.prefs.prefs[1] = &model.UserPreferences{UserID: 1, Tone: "warm"}
	f.edits.signals = [][]string{{learning.SignalAddedCTA}, {learning.SignalAddedCTA, learning.SignalShorter}}

	res, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{Title: "Quarter recap"})
	require.NoError(t, err)

	assert.True(t, res.PersonalizationUsed)
	assert.Contains(t, f.llm.calls[0].System, "warm")
	assert.Equal(t, 1, res.ImprovementsApplied)
	assert.True(t, strings.HasSuffix(res.Content, learning.CallToAction))
	assert.Equal(t, []string{}, res.Hashtags)
}

func TestDraftGenerate_HashtagFailureIsNotFatal(t *testing.T) {
	f := newDraftFixture(newFakeLLM(
		reply{text: "Body."},
		reply{err: &llm.UpstreamError{StatusCode: 500, Message: "boom"}},
	))

	res, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "Body.", res.Content)
	assert.Equal(t, []string{}, res.Hashtags)
}

func TestDraftGenerate_Errors(t *testing.T) {
	ctx := context.Background()

	notConfigured := newFakeLLM()
	notConfigured.configured = false
	_, err := newDraftFixture(notConfigured).svc.Generate(ctx, 1, &dto.GenerateDraftDTO{Title: "t"})
	assert.ErrorIs(t, err, ErrLLMNotConfigured)

	_, err = newDraftFixture(newFakeLLM(reply{text: "x"})).svc.Generate(ctx, 2, &dto.GenerateDraftDTO{
		Title: "t", PromptID: util.PtrUint64(11),
	})
	assert.ErrorIs(t, err, ErrPromptNotFound)

	_, err = newDraftFixture(newFakeLLM(reply{text: "x"})).svc.Generate(ctx, 2, &dto.GenerateDraftDTO{
		Title: "t", PostID: util.PtrUint64(21),
	})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = newDraftFixture(newFakeLLM()).svc.Generate(ctx, 1, &dto.GenerateDraftDTO{})
	var pe *util.ParamError
	assert.True(t, errors.As(err, &pe))
}

func TestDraftGenerate_ClassifiesUpstreamErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"rate limit", &llm.UpstreamError{StatusCode: 429, Code: "rate_limit_exceeded"}, ErrLLMRateLimited},
		{"quota", &llm.UpstreamError{StatusCode: 429, Type: "insufficient_quota"}, ErrLLMQuotaExceeded},
		{"unknown 429", &llm.UpstreamError{StatusCode: 429}, ErrLLMRateLimitUnknown},
		{"auth", &llm.UpstreamError{StatusCode: 401}, ErrLLMAuth},
		{"timeout", &llm.UpstreamError{Timeout: true}, ErrLLMTimeout},
		{"other", &llm.UpstreamError{StatusCode: 503}, ErrGenerationFailed},
		{"empty", llm.ErrEmptyCompletion, ErrGenerationFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newDraftFixture(newFakeLLM(reply{err: tc.err}))
			_, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{Title: "t", PromptID: util.PtrUint64(11)})
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, f.prompts.marked)
		})
	}
}

func TestDraftHistory(t *testing.T) {
	f := newDraftFixture(newFakeLLM(reply{text: "Body."}, reply{text: "#a"}))
	res, err := f.svc.Generate(context.Background(), 1, &dto.GenerateDraftDTO{Title: "t"})
	require.NoError(t, err)

	list, err := f.svc.History(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, res.GenerationID, list[0].GenerationID)
	assert.Equal(t, "draft", list[0].Kind)
}
