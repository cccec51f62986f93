package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// InvalidateFunc 丢弃某个用户的派生状态
type InvalidateFunc func(ctx context.Context, userID uint64) error

// Invalidators 按表分发的失效回调，nil 表示忽略该表
type Invalidators struct {
	Preferences InvalidateFunc
	Users       InvalidateFunc
	Edits       InvalidateFunc
}

type tableRoute struct {
	column string
	fn     InvalidateFunc
	// insertsOnly 只处理 INSERT
	insertsOnly bool
}

// CDCHandler 把 canal binlog 变更转换为缓存失效
type CDCHandler struct {
	routes map[string]tableRoute
}

func NewCDCHandler(inv Invalidators) *CDCHandler {
	routes := make(map[string]tableRoute)
	if inv.Preferences != nil {
		routes["user_preferences"] = tableRoute{column: "user_id", fn: inv.Preferences}
	}
	if inv.Users != nil {
		routes["users"] = tableRoute{column: "id", fn: inv.Users}
	}
	if inv.Edits != nil {
		routes["content_edits"] = tableRoute{column: "user_id", fn: inv.Edits, insertsOnly: true}
	}
	return &CDCHandler{routes: routes}
}

func (s *CDCHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("cdc consumer setup")
	return nil
}

func (s *CDCHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("cdc consumer cleanup")
	return nil
}

func (s *CDCHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	if err := pullMessageBatch(session, claim, s.logic); err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CDCHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg)
	if err != nil {
		// 无法解析的消息重试也不会成功
		log.Warn("skip malformed canal message", "err", err)
		return nil
	}
	if canalMsg.IsDDL {
		return nil
	}

	route, ok := s.routes[canalMsg.Table]
	if !ok {
		return nil
	}
	if route.insertsOnly && canalMsg.Type != "INSERT" {
		return nil
	}

	for _, userID := range canalMsg.UserIDs(route.column) {
		if err = route.fn(ctx, userID); err != nil {
			return errors.Wrapf(err, "invalidate %s for user %d", canalMsg.Table, userID)
		}
	}
	return nil
}
