package service

import (
	"context"
	"errors"

	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/promptparse"

	"github.com/go-sql-driver/mysql"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	PaymentRequired     = 402
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
	BadGateway          = 502
	GatewayTimeout      = 504
)

var (
	ErrParamInvalid         = errors.New("invalid parameters")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserDisabled         = errors.New("account is disabled")
	ErrUserSelf             = errors.New("cannot change your own account")
	ErrPromptNotFound       = errors.New("prompt not found")
	ErrPromptUsed           = errors.New("prompt has already been used")
	ErrScheduleNotCadence   = errors.New("posts can only be scheduled on Monday, Wednesday or Friday")
	ErrScheduleSlotFull     = errors.New("this day already has 2 scheduled posts")
	ErrPostNotFound         = errors.New("post not found")
	ErrPostNotDraft         = errors.New("only drafts can change status")
	ErrFeedbackExists       = errors.New("feedback already submitted for this post")
	ErrGenerationInProgress = errors.New("prompt generation is already running for this user")

	ErrLLMNotConfigured    = errors.New("AI generation is not configured")
	ErrLLMRateLimited      = errors.New("AI provider rate limit reached, please retry in a minute")
	ErrLLMQuotaExceeded    = errors.New("AI provider quota exhausted, billing action required")
	ErrLLMRateLimitUnknown = errors.New("AI provider rejected the request (429)")
	ErrLLMAuth             = errors.New("AI provider authentication failed, check server configuration")
	ErrLLMTimeout          = errors.New("request timed out")
	ErrGenerationFailed    = errors.New("generation failed, retry later")
	ErrMalformedOutput     = errors.New("AI output could not be parsed into prompts")

	UnauthorizedError = errors.New("unauthorized")
	UnExpectedError   = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserDisabled:         Unauthorized,
	ErrUserSelf:             BadRequest,
	ErrPromptNotFound:       NotFound,
	ErrPromptUsed:           BadRequest,
	ErrScheduleNotCadence:   BadRequest,
	ErrScheduleSlotFull:     BadRequest,
	ErrPostNotFound:         NotFound,
	ErrPostNotDraft:         BadRequest,
	ErrFeedbackExists:       BadRequest,
	ErrGenerationInProgress: Conflict,
	ErrLLMNotConfigured:     InternalServerError,
	ErrLLMRateLimited:       TooManyRequests,
	ErrLLMQuotaExceeded:     PaymentRequired,
	ErrLLMRateLimitUnknown:  TooManyRequests,
	ErrLLMAuth:              InternalServerError,
	ErrLLMTimeout:           GatewayTimeout,
	ErrGenerationFailed:     BadGateway,
	ErrMalformedOutput:      BadGateway,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}

// CodeOf 返回错误对应的业务码，未登记的错误返回 false
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}

// classifyLLMError 把模型调用失败映射为对外的错误类型
func classifyLLMError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, promptparse.ErrMalformedOutput) {
		return ErrMalformedOutput
	}
	if errors.Is(err, llm.ErrNotConfigured) {
		return ErrLLMNotConfigured
	}
	switch llm.ReasonOf(err) {
	case llm.ReasonRateLimit:
		return ErrLLMRateLimited
	case llm.ReasonQuota:
		return ErrLLMQuotaExceeded
	case llm.ReasonUnknown429:
		return ErrLLMRateLimitUnknown
	case llm.ReasonAuth:
		return ErrLLMAuth
	case llm.ReasonTimeout:
		return ErrLLMTimeout
	default:
		return ErrGenerationFailed
	}
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
