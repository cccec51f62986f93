package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const generationHistoryCollection = "generation_history"

type GenerationHistoryRepo interface {
	Save(ctx context.Context, h *GenerationHistory) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*GenerationHistory, error)
}

type generationHistoryRepoImpl struct {
	col *mongo.Collection
}

func NewGenerationHistoryRepo(db *mongo.Database) GenerationHistoryRepo {
	return &generationHistoryRepoImpl{
		col: db.Collection(generationHistoryCollection),
	}
}

func (s *generationHistoryRepoImpl) Save(ctx context.Context, h *GenerationHistory) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	_, err := s.col.InsertOne(ctx, h)
	return err
}

// ListByUser 最近的记录在前
func (s *generationHistoryRepoImpl) ListByUser(ctx context.Context, userID uint64, limit int) ([]*GenerationHistory, error) {
	if limit <= 0 {
		limit = 20
	}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*GenerationHistory, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// NopHistoryRepo 未启用 MongoDB 时使用，丢弃所有记录
type NopHistoryRepo struct{}

func (NopHistoryRepo) Save(context.Context, *GenerationHistory) error { return nil }

func (NopHistoryRepo) ListByUser(context.Context, uint64, int) ([]*GenerationHistory, error) {
	return []*GenerationHistory{}, nil
}
