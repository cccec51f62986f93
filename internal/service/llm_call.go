package service

import (
	"context"
	log "log/slog"
	"time"

	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/metrics"
)

const (
	llmKindDraft    = "draft"
	llmKindHashtags = "hashtags"
	llmKindBatch    = "prompt_batch"
)

// complete 调用模型并记录指标，返回原始错误，由调用方决定是否分类
func complete(ctx context.Context, client llm.Completer, kind string, req llm.Request) (*llm.Completion, error) {
	start := time.Now()
	res, err := client.Complete(ctx, req)
	if err != nil {
		reason := string(llm.ReasonOf(err))
		metrics.ObserveLLM(kind, reason, start)
		log.ErrorContext(ctx, "LLM call failed", "kind", kind, "reason", reason, "err", err)
		return nil, err
	}
	metrics.ObserveLLM(kind, "ok", start)
	return res, nil
}
