package consts

const (
	TokenBlacklistKey = "auth:blacklist:"
	InsightsEditsKey  = "insights:edits:"
)

const (
	PromptGenerateLock = "lock:prompt:generate:"
	StalePromptJobLock = "lock:job:stale_prompt"
)
