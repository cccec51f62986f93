package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"Postcraft/internal/model"
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptRepo_ReplaceAdminBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromptRepo(db)

	prompts := []*model.ContentPrompt{
		{UserID: 7, Category: "Personal story post", PillarNumber: 1, PromptText: "a", ScheduledDate: util.PtrString("2026-10-19"), Source: consts.PromptSourceAdmin},
		{UserID: 7, Category: "Personal story post", PillarNumber: 2, PromptText: "b", ScheduledDate: util.PtrString("2026-10-19"), Source: consts.PromptSourceAdmin},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `content_prompts` WHERE user_id = ? AND source = ? AND is_used = ?")).
		WithArgs(uint64(7), consts.PromptSourceAdmin, false).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectExec("INSERT INTO `content_prompts`").
		WillReturnResult(sqlmock.NewResult(100, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAdminBatch(context.Background(), 7, prompts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepo_ReplaceAdminBatch_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromptRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `content_prompts`").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `content_prompts`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceAdminBatch(context.Background(), 7, []*model.ContentPrompt{{UserID: 7, PromptText: "a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromptRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `content_prompts` WHERE `content_prompts`.`id` = \\?").
		WithArgs(uint64(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepo_CountPushedOnDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromptRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `content_prompts` WHERE user_id = ? AND scheduled_date = ? AND pushed_to_calendar = ? AND id <> ?")).
		WithArgs(uint64(7), "2026-10-19", true, uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	n, err := repo.CountPushedOnDate(context.Background(), 7, "2026-10-19", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromptRepo_ArchiveStale(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromptRepo(db)

	mock.ExpectExec("UPDATE `content_prompts` SET `is_used`=\\?,`updated_at`=\\? WHERE .*scheduled_date < \\?").
		WithArgs(true, sqlmock.AnyArg(), false, false, "2026-10-02").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ArchiveStale(context.Background(), "2026-10-02")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
