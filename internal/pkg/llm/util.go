package llm

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

// Request 一次补全请求
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Completion 补全结果
type Completion struct {
	Text     string
	Model    string
	Duration time.Duration
}

// Complete 发送 system + user 两条消息；失败时返回 *UpstreamError 或 ErrNotConfigured。不做重试
func (c *Client) Complete(ctx context.Context, req Request) (*Completion, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(req.User)},
		},
	}

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if c.modelName != "" {
		opts = append(opts, llms.WithModel(c.modelName))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	callCtx, capt := withCapture(ctx)
	start := time.Now()
	log.InfoContext(ctx, "正在请求AI大模型", "model", c.modelName, "max_tokens", req.MaxTokens)

	resp, err := c.model.GenerateContent(callCtx, messages, opts...)
	elapsed := time.Since(start)
	if err != nil {
		return nil, toUpstreamError(ctx, capt, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return nil, ErrEmptyCompletion
	}

	return &Completion{Text: strings.TrimSpace(resp.Choices[0].Content), Model: c.modelName, Duration: elapsed}, nil
}

func toUpstreamError(ctx context.Context, capt *capture, err error) error {
	status, code, errType, message, timeout := capt.snapshot()

	if !timeout {
		timeout = errors.Is(err, context.DeadlineExceeded) ||
			errors.Is(ctx.Err(), context.DeadlineExceeded) ||
			strings.Contains(strings.ToLower(err.Error()), "timeout")
	}
	if status == 0 && !timeout {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &UpstreamError{Message: err.Error(), Err: err}
	}
	if message == "" {
		message = err.Error()
	}
	return &UpstreamError{
		StatusCode: status,
		Code:       code,
		Type:       errType,
		Message:    message,
		Timeout:    timeout,
		Err:        err,
	}
}
