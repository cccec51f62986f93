package mongo

import (
	"time"
)

const (
	HistoryKindDraft = "draft"
	HistoryKindBatch = "prompt_batch"
)

// GenerationHistory 一次模型调用的完整记录
type GenerationHistory struct {
	ID           string            `bson:"_id,omitempty" json:"id"`
	GenerationID string            `bson:"generation_id" json:"generationId"`
	Kind         string            `bson:"kind" json:"kind"`
	UserID       uint64            `bson:"user_id" json:"userId"`
	Model        string            `bson:"model" json:"model"`
	SystemPrompt string            `bson:"system_prompt" json:"systemPrompt"`
	UserPrompt   string            `bson:"user_prompt" json:"userPrompt"`
	Params       map[string]string `bson:"params" json:"params"`
	MaxTokens    int               `bson:"max_tokens" json:"maxTokens"`
	Temperature  float64           `bson:"temperature" json:"temperature"`
	Output       string            `bson:"output" json:"output"`
	DurationMs   int64             `bson:"duration_ms" json:"durationMs"`
	CreatedAt    time.Time         `bson:"created_at" json:"createdAt"`
}
