package service

import (
	"context"
	"testing"

	"Postcraft/internal/api/dto"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture() (*fakePostRepo, *fakePromptRepo, PostService) {
	posts := newFakePostRepo(
		&model.GeneratedPost{ID: 21, UserID: 1, Title: "t", Content: "c", Status: consts.PostStatusDraft},
		&model.GeneratedPost{ID: 22, UserID: 1, Content: "used", Status: consts.PostStatusUsed},
	)
	prompts := newFakePromptRepo(
		&model.ContentPrompt{ID: 11, UserID: 1},
		&model.ContentPrompt{ID: 12, UserID: 2},
	)
	return posts, prompts, NewPostService(posts, prompts, nil)
}

func TestPostSave(t *testing.T) {
	posts, _, svc := newPostFixture()
	ctx := context.Background()

	res, err := svc.Save(ctx, 1, &dto.SavePostDTO{
		Title:         "Launch",
		Content:       "We shipped.",
		PromptID:      util.PtrUint64(11),
		Hashtags:      []string{"#Launch", "launch", " Product ", "##Growth"},
		ScheduledDate: util.PtrString("2026-10-19"),
		Category:      "story",
		Length:        "SHORT",
	})
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusDraft, res.Status)
	assert.Equal(t, []string{"#Launch", "#Product", "#Growth"}, res.Hashtags)
	assert.Equal(t, "Personal story post", res.Category)
	require.Len(t, posts.created, 1)
	assert.Equal(t, "short", posts.created[0].GenerationMetadata.Data().Length)

	blank, err := svc.Save(ctx, 1, &dto.SavePostDTO{Content: "x", ScheduledDate: util.PtrString(""), Length: "Long"})
	require.NoError(t, err)
	assert.Nil(t, blank.ScheduledDate)
	assert.Equal(t, "long", posts.created[1].GenerationMetadata.Data().Length)

	_, err = svc.Save(ctx, 1, &dto.SavePostDTO{Content: "x", PromptID: util.PtrUint64(12)})
	assert.ErrorIs(t, err, ErrPromptNotFound)

	_, err = svc.Save(ctx, 1, &dto.SavePostDTO{Content: "x", ScheduledDate: util.PtrString("19/10/2026")})
	var pe *util.ParamError
	assert.ErrorAs(t, err, &pe)
}

func TestPostUpdate(t *testing.T) {
	posts, _, svc := newPostFixture()
	ctx := context.Background()

	res, err := svc.Update(ctx, 1, 21, &dto.UpdatePostDTO{
		Content:       util.PtrString("new body"),
		ScheduledDate: util.PtrString(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "new body", res.Content)
	assert.Equal(t, "t", res.Title)
	assert.Nil(t, res.ScheduledDate)
	require.Len(t, posts.updated, 1)

	_, err = svc.Update(ctx, 2, 21, &dto.UpdatePostDTO{Title: util.PtrString("x")})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostUpdateStatus(t *testing.T) {
	posts, _, svc := newPostFixture()
	ctx := context.Background()

	require.NoError(t, svc.UpdateStatus(ctx, 1, 21, &dto.UpdatePostStatusDTO{Status: consts.PostStatusUsed}))
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 1, 22, &dto.UpdatePostStatusDTO{Status: consts.PostStatusArchived}), ErrPostNotDraft)
	assert.Error(t, svc.UpdateStatus(ctx, 1, 21, &dto.UpdatePostStatusDTO{Status: consts.PostStatusDraft}))

	// 并发下状态已被改掉
	posts.statusRows = 0
	assert.ErrorIs(t, svc.UpdateStatus(ctx, 1, 21, &dto.UpdatePostStatusDTO{Status: consts.PostStatusUsed}), ErrPostNotDraft)
}

func TestPostDeleteAndGet(t *testing.T) {
	_, _, svc := newPostFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 2, 21), ErrPostNotFound)
	require.NoError(t, svc.Delete(ctx, 1, 21))
	_, err := svc.Get(ctx, 1, 21)
	assert.ErrorIs(t, err, ErrPostNotFound)

	res, err := svc.Get(ctx, 1, 22)
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.Hashtags)
}

func TestPostList(t *testing.T) {
	_, _, svc := newPostFixture()

	res, err := svc.List(context.Background(), 1, &dto.ListPostsDTO{Status: consts.PostStatusUsed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, 1, res.Page)

	_, err = svc.List(context.Background(), 1, &dto.ListPostsDTO{Status: "deleted"})
	assert.Error(t, err)
}
