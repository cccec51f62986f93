package llm

import (
	"golang.org/x/sync/semaphore"
)

// DefaultMaxConcurrency 同时在途的补全请求上限
const DefaultMaxConcurrency = int64(5)

func newSemaphore(n int64) *semaphore.Weighted {
	if n <= 0 {
		n = DefaultMaxConcurrency
	}
	return semaphore.NewWeighted(n)
}
