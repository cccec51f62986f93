package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []uint64
	err   error
}

func (r *recorder) fn(_ context.Context, id uint64) error {
	r.calls = append(r.calls, id)
	return r.err
}

func message(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "cdc", Value: []byte(value)}
}

func TestCDCHandler_RoutesByTable(t *testing.T) {
	prefs, users, edits := &recorder{}, &recorder{}, &recorder{}
	h := NewCDCHandler(Invalidators{Preferences: prefs.fn, Users: users.fn, Edits: edits.fn})
	ctx := context.Background()

	require.NoError(t, h.logic(ctx, message(`{"table":"user_preferences","type":"UPDATE","data":[{"id":"1","user_id":"42"},{"id":"2","user_id":"42"}]}`)))
	require.NoError(t, h.logic(ctx, message(`{"table":"users","type":"UPDATE","data":[{"id":"7","disabled":"1"}]}`)))
	require.NoError(t, h.logic(ctx, message(`{"table":"content_edits","type":"INSERT","data":[{"id":"9","user_id":"42"}]}`)))

	assert.Equal(t, []uint64{42}, prefs.calls)
	assert.Equal(t, []uint64{7}, users.calls)
	assert.Equal(t, []uint64{42}, edits.calls)
}

func TestCDCHandler_IgnoresUnrelated(t *testing.T) {
	edits := &recorder{}
	h := NewCDCHandler(Invalidators{Edits: edits.fn})
	ctx := context.Background()

	assert.NoError(t, h.logic(ctx, message(`not json`)))
	assert.NoError(t, h.logic(ctx, message(`{"table":"content_edits","type":"DELETE","data":[{"user_id":"1"}]}`)))
	assert.NoError(t, h.logic(ctx, message(`{"table":"content_edits","isDdl":true,"type":"ALTER"}`)))
	assert.NoError(t, h.logic(ctx, message(`{"table":"generated_posts","type":"INSERT","data":[{"user_id":"1"}]}`)))
	assert.NoError(t, h.logic(ctx, message(`{"table":"users","type":"UPDATE","data":[{"id":"1"}]}`)))
	assert.Empty(t, edits.calls)
}

func TestCDCHandler_PropagatesInvalidateError(t *testing.T) {
	users := &recorder{err: errors.New("redis down")}
	h := NewCDCHandler(Invalidators{Users: users.fn})

	err := h.logic(context.Background(), message(`{"table":"users","type":"UPDATE","data":[{"id":"3"}]}`))
	assert.ErrorContains(t, err, "redis down")
}

func TestProcessBatch_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	logic := func(context.Context, *sarama.ConsumerMessage) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}

	processBatch(context.Background(), []*sarama.ConsumerMessage{message("{}")}, logic)
	assert.Equal(t, 3, attempts)
}
