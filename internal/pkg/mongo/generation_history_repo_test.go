package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGenerationHistoryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save sets created_at", func(mt *mtest.T) {
		repo := &generationHistoryRepoImpl{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		h := &GenerationHistory{GenerationID: "g-1", Kind: HistoryKindDraft, UserID: 3}
		require.NoError(t, repo.Save(context.Background(), h))
		assert.False(t, h.CreatedAt.IsZero())
	})

	mt.Run("list by user", func(mt *mtest.T) {
		repo := &generationHistoryRepoImpl{col: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "generation_id", Value: "g-2"},
				{Key: "kind", Value: HistoryKindBatch},
				{Key: "user_id", Value: int64(3)},
				{Key: "created_at", Value: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
			},
		))

		list, err := repo.ListByUser(context.Background(), 3, 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "g-2", list[0].GenerationID)
		assert.Equal(t, uint64(3), list[0].UserID)
	})
}
