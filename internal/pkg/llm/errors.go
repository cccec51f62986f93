package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNotConfigured = errors.New("llm api key is not configured")

// ErrEmptyCompletion 模型返回了空内容
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// Reason 上游失败的分类
type Reason string

const (
	ReasonRateLimit  Reason = "rate_limit"
	ReasonQuota      Reason = "quota_exhausted"
	ReasonUnknown429 Reason = "unknown_429"
	ReasonAuth       Reason = "auth"
	ReasonTimeout    Reason = "timeout"
	ReasonOther      Reason = "other"
)

// 供应商在 429 响应中返回的 error.code / error.type
const (
	providerRateLimitExceeded = "rate_limit_exceeded"
	providerInsufficientQuota = "insufficient_quota"
)

// UpstreamError 带状态码与供应商错误码的上游失败
type UpstreamError struct {
	StatusCode int
	Code       string
	Type       string
	Message    string
	Timeout    bool
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Timeout {
		return "llm request timed out"
	}
	return fmt.Sprintf("llm upstream status %d (code=%s type=%s): %s", e.StatusCode, e.Code, e.Type, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Reason 按状态码与供应商子原因分类
func (e *UpstreamError) Reason() Reason {
	if e.Timeout {
		return ReasonTimeout
	}
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		switch {
		case e.Code == providerInsufficientQuota || e.Type == providerInsufficientQuota:
			return ReasonQuota
		case e.Code == providerRateLimitExceeded || e.Type == providerRateLimitExceeded ||
			e.Type == "requests" || e.Type == "tokens":
			return ReasonRateLimit
		default:
			return ReasonUnknown429
		}
	case http.StatusUnauthorized:
		return ReasonAuth
	default:
		return ReasonOther
	}
}

// ReasonOf 从任意错误取分类，非上游错误归为 other
func ReasonOf(err error) Reason {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Reason()
	}
	return ReasonOther
}
