package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const bodyLogLimit = 1000

// HTTPTransport 记录出站 HTTP 请求（LLM 调用），请求/响应体截断后写入日志
type HTTPTransport struct {
	Transport http.RoundTripper
	// Name 日志中的上游名称
	Name string
	// SlowThreshold 超过该耗时记为慢请求
	SlowThreshold time.Duration
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	var reqBody []byte
	if req.Body != nil {
		reqBody, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
	}

	base := t.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("upstream", t.Name),
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
		log.String("req_body", truncate(string(reqBody))),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "HTTP_UPSTREAM_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	var resBody []byte
	if resp.Body != nil {
		resBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
	}
	fields = append(fields, log.Int("status", resp.StatusCode), log.String("res_body", truncate(string(resBody))))

	switch {
	case resp.StatusCode >= 400:
		log.WarnContext(req.Context(), "HTTP_UPSTREAM_FAIL", fields...)
	case t.SlowThreshold > 0 && elapsed > t.SlowThreshold:
		log.WarnContext(req.Context(), "HTTP_UPSTREAM_SLOW", fields...)
	default:
		log.InfoContext(req.Context(), "HTTP_UPSTREAM", fields...)
	}

	return resp, nil
}

func truncate(s string) string {
	if len(s) > bodyLogLimit {
		return s[:bodyLogLimit] + "...[truncated]"
	}
	return s
}
