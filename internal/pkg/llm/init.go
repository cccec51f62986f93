package llm

import (
	"Postcraft/internal/api/config"
	"Postcraft/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/sync/semaphore"
)

// DefaultTimeout 请求客户端的固定超时
const DefaultTimeout = 30 * time.Second

// Completer 文本补全
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Client langchaingo openai 兼容客户端的封装
type Client struct {
	model     llms.Model
	modelName string
	sem       *semaphore.Weighted
}

// NewClient 未配置 api key 时返回一个 Configured()==false 的客户端，调用时快速失败
func NewClient(cfg config.LLMConfig) (*Client, error) {
	c := &Client{modelName: cfg.Model, sem: newSemaphore(cfg.MaxConcurrency)}
	if cfg.ApiKey == "" {
		log.Warn("LLM api key 未配置，生成相关接口将直接返回配置错误")
		return c, nil
	}

	timeout := DefaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	opts := []openai.Option{
		openai.WithToken(cfg.ApiKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{
			Timeout: timeout,
			Transport: &CaptureMiddleware{
				Base: &logger.HTTPTransport{Transport: http.DefaultTransport, Name: "llm", SlowThreshold: 10 * time.Second},
			},
		}),
	}
	if cfg.URL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.URL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}
	c.model = model
	return c, nil
}

// NewClientWithModel 直接注入 llms.Model
func NewClientWithModel(model llms.Model, modelName string, maxConcurrency int64) *Client {
	return &Client{model: model, modelName: modelName, sem: newSemaphore(maxConcurrency)}
}

func (c *Client) Configured() bool {
	return c != nil && c.model != nil
}
