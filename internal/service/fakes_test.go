package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Postcraft/internal/api/config"
	"Postcraft/internal/model"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/mongo"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}))
	return mr
}

type reply struct {
	text string
	err  error
}

// fakeLLM 按调用顺序返回预设结果，超出后重复最后一个
type fakeLLM struct {
	mu         sync.Mutex
	configured bool
	replies    []reply
	calls      []llm.Request
}

func newFakeLLM(replies ...reply) *fakeLLM {
	return &fakeLLM{configured: true, replies: replies}
}

func (f *fakeLLM) Configured() bool { return f.configured }

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (*llm.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if len(f.replies) == 0 {
		return nil, errors.New("no reply scripted")
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	if r.err != nil {
		return nil, r.err
	}
	return &llm.Completion{Text: r.text, Model: "test-model", Duration: 5 * time.Millisecond}, nil
}

type fakePromptRepo struct {
	prompts     map[uint64]*model.ContentPrompt
	replaced    [][]*model.ContentPrompt
	marked      []uint64
	pushedCount int64
	scheduled   map[uint64]*string
	archived    []string
	replaceErr  error
}

func newFakePromptRepo(prompts ...*model.ContentPrompt) *fakePromptRepo {
	r := &fakePromptRepo{prompts: map[uint64]*model.ContentPrompt{}, scheduled: map[uint64]*string{}}
	for _, p := range prompts {
		r.prompts[p.ID] = p
	}
	return r
}

func (r *fakePromptRepo) GetByID(_ context.Context, id uint64) (*model.ContentPrompt, error) {
	return r.prompts[id], nil
}

func (r *fakePromptRepo) ListByUser(_ context.Context, userID uint64, includeUsed bool) ([]*model.ContentPrompt, error) {
	var out []*model.ContentPrompt
	for _, p := range r.prompts {
		if p.UserID == userID && (includeUsed || !p.IsUsed) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePromptRepo) ReplaceAdminBatch(_ context.Context, _ uint64, prompts []*model.ContentPrompt) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaced = append(r.replaced, prompts)
	return nil
}

func (r *fakePromptRepo) UpdateSchedule(_ context.Context, id uint64, date *string, _ bool) error {
	r.scheduled[id] = date
	return nil
}

func (r *fakePromptRepo) CountPushedOnDate(context.Context, uint64, string, uint64) (int64, error) {
	return r.pushedCount, nil
}

func (r *fakePromptRepo) MarkUsed(_ context.Context, id uint64) error {
	r.marked = append(r.marked, id)
	return nil
}

func (r *fakePromptRepo) ArchiveStale(_ context.Context, before string) (int64, error) {
	r.archived = append(r.archived, before)
	return 3, nil
}

type fakePostRepo struct {
	posts   map[uint64]*model.GeneratedPost
	created []*model.GeneratedPost
	updated []*model.GeneratedPost
	// statusRows UpdateStatus 返回的影响行数
	statusRows int64
}

func newFakePostRepo(posts ...*model.GeneratedPost) *fakePostRepo {
	r := &fakePostRepo{posts: map[uint64]*model.GeneratedPost{}, statusRows: 1}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakePostRepo) Create(_ context.Context, post *model.GeneratedPost) error {
	post.ID = uint64(100 + len(r.created))
	r.created = append(r.created, post)
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uint64) (*model.GeneratedPost, error) {
	return r.posts[id], nil
}

func (r *fakePostRepo) ListByUser(_ context.Context, userID uint64, status string, limit, offset int) ([]*model.GeneratedPost, int64, error) {
	var out []*model.GeneratedPost
	for _, p := range r.posts {
		if p.UserID == userID && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePostRepo) UpdateContent(_ context.Context, post *model.GeneratedPost) error {
	r.updated = append(r.updated, post)
	return nil
}

func (r *fakePostRepo) UpdateStatus(context.Context, uint64, uint64, string, string) (int64, error) {
	return r.statusRows, nil
}

func (r *fakePostRepo) Delete(_ context.Context, id, userID uint64) (int64, error) {
	if p, ok := r.posts[id]; ok && p.UserID == userID {
		delete(r.posts, id)
		return 1, nil
	}
	return 0, nil
}

type fakeEditRepo struct {
	mu        sync.Mutex
	signals   [][]string
	created   []*model.ContentEdit
	stats     *repository.EditStats
	statsErr  error
	statCalls int
}

func (r *fakeEditRepo) Create(_ context.Context, edit *model.ContentEdit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, edit)
	return nil
}

func (r *fakeEditRepo) ListRecent(context.Context, uint64, int) ([]*model.ContentEdit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, nil
}

func (r *fakeEditRepo) RecentSignals(_ context.Context, _ uint64, limit int) ([][]string, error) {
	if len(r.signals) > limit {
		return r.signals[:limit], nil
	}
	return r.signals, nil
}

func (r *fakeEditRepo) Stats(context.Context, uint64) (*repository.EditStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statCalls++
	if r.statsErr != nil {
		return nil, r.statsErr
	}
	if r.stats == nil {
		return &repository.EditStats{Significance: map[string]int64{}}, nil
	}
	return r.stats, nil
}

func (r *fakeEditRepo) createdEdits() []*model.ContentEdit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*model.ContentEdit(nil), r.created...)
}

type fakePrefsRepo struct {
	prefs    map[uint64]*model.UserPreferences
	upserted []*model.UserPreferences
	getCalls int
}

func newFakePrefsRepo(prefs ...*model.UserPreferences) *fakePrefsRepo {
	r := &fakePrefsRepo{prefs: map[uint64]*model.UserPreferences{}}
	for _, p := range prefs {
		r.prefs[p.UserID] = p
	}
	return r
}

func (r *fakePrefsRepo) Get(_ context.Context, userID uint64) (*model.UserPreferences, error) {
	r.getCalls++
	return r.prefs[userID], nil
}

func (r *fakePrefsRepo) Upsert(_ context.Context, prefs *model.UserPreferences) error {
	r.upserted = append(r.upserted, prefs)
	r.prefs[prefs.UserID] = prefs
	return nil
}

type fakeUserRepo struct {
	users map[uint64]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint64]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, limit, offset int) ([]*model.User, int64, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint64, role string) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

func (r *fakeUserRepo) UpdateDisabled(_ context.Context, id uint64, disabled bool) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.Disabled = disabled
	return 1, nil
}

type fakeFeedbackRepo struct {
	posts     []*model.PostFeedback
	users     []*model.UserFeedback
	comments  []string
	createErr error
}

func (r *fakeFeedbackRepo) CreatePostFeedback(_ context.Context, fb *model.PostFeedback) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.posts = append(r.posts, fb)
	return nil
}

func (r *fakeFeedbackRepo) CreateUserFeedback(_ context.Context, fb *model.UserFeedback) error {
	r.users = append(r.users, fb)
	return nil
}

func (r *fakeFeedbackRepo) ListPostFeedback(_ context.Context, limit int) ([]*model.PostFeedback, error) {
	if len(r.posts) > limit {
		return r.posts[:limit], nil
	}
	return r.posts, nil
}

func (r *fakeFeedbackRepo) ListUserFeedback(_ context.Context, limit int) ([]*model.UserFeedback, error) {
	if len(r.users) > limit {
		return r.users[:limit], nil
	}
	return r.users, nil
}

func (r *fakeFeedbackRepo) Count(context.Context) (int64, error) {
	return int64(len(r.posts) + len(r.users)), nil
}

func (r *fakeFeedbackRepo) RecentComments(_ context.Context, _ uint64, limit int) ([]string, error) {
	if len(r.comments) > limit {
		return r.comments[:limit], nil
	}
	return r.comments, nil
}

type fakeHistory struct {
	mu    sync.Mutex
	saved []*mongo.GenerationHistory
	err   error
}

func (h *fakeHistory) Save(_ context.Context, rec *mongo.GenerationHistory) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.saved = append(h.saved, rec)
	return nil
}

func (h *fakeHistory) ListByUser(_ context.Context, userID uint64, _ int) ([]*mongo.GenerationHistory, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*mongo.GenerationHistory
	for _, rec := range h.saved {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}
