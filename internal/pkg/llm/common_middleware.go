package llm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/goccy/go-json"
)

type captureKey struct{}

// capture 单次请求的上游失败信息。langchaingo 会把非 2xx 响应和传输错误转成纯文本错误，
// 状态码与供应商错误码只能在 transport 层取到
type capture struct {
	mu         sync.Mutex
	statusCode int
	code       string
	errType    string
	message    string
	timeout    bool
}

func withCapture(ctx context.Context) (context.Context, *capture) {
	c := &capture{}
	return context.WithValue(ctx, captureKey{}, c), c
}

func captureFrom(ctx context.Context) *capture {
	c, _ := ctx.Value(captureKey{}).(*capture)
	return c
}

func (c *capture) snapshot() (status int, code, errType, message string, timeout bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusCode, c.code, c.errType, c.message, c.timeout
}

// providerError OpenAI 兼容接口的错误体，code 可能是字符串或数字
type providerError struct {
	Error struct {
		Code    any    `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CaptureMiddleware 记录非 2xx 响应的状态码与错误体、以及超时，响应本身原样返回
type CaptureMiddleware struct {
	Base http.RoundTripper
}

func (m *CaptureMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	base := m.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	c := captureFrom(req.Context())
	if c == nil {
		return resp, err
	}

	if err != nil {
		if isTimeout(req.Context(), err) {
			c.mu.Lock()
			c.timeout = true
			c.mu.Unlock()
		}
		return resp, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewBuffer(body))
	if readErr != nil && isTimeout(req.Context(), readErr) {
		c.mu.Lock()
		c.timeout = true
		c.mu.Unlock()
	}

	var pe providerError
	_ = json.Unmarshal(body, &pe)

	c.mu.Lock()
	c.statusCode = resp.StatusCode
	c.code = codeString(pe.Error.Code)
	c.errType = pe.Error.Type
	c.message = pe.Error.Message
	c.mu.Unlock()

	return resp, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func codeString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		b, _ := json.Marshal(c)
		return string(b)
	}
}
