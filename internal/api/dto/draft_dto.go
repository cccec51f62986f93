package dto

import "strings"

// GenerateDraftDTO prompt_id 与 post_id 二选一，post_id 表示在已有稿件上重新生成
type GenerateDraftDTO struct {
	PromptID      *uint64 `json:"prompt_id"`
	PostID        *uint64 `json:"post_id"`
	Title         string  `json:"title" validate:"required,max=255"`
	Hook          string  `json:"hook" validate:"max=512"`
	Category      string  `json:"category" validate:"max=64"`
	Length        string  `json:"length" validate:"omitempty,oneof=short medium long"`
	ScheduledDate *string `json:"scheduled_date" validate:"omitempty,date_or_empty"`
	// WithHashtags 为 nil 时默认生成标签
	WithHashtags *bool `json:"with_hashtags"`
}

// Normalize 校验前统一篇幅大小写，空日期视为未排期
func (d *GenerateDraftDTO) Normalize() {
	d.Length = strings.ToLower(strings.TrimSpace(d.Length))
	if d.ScheduledDate != nil && *d.ScheduledDate == "" {
		d.ScheduledDate = nil
	}
}

type DraftResultDTO struct {
	Content             string             `json:"content"`
	Hashtags            []string           `json:"hashtags"`
	PersonalizationUsed bool               `json:"personalization_used"`
	ImprovementsApplied int                `json:"improvements_applied"`
	GenerationID        string             `json:"generation_id"`
	Metadata            GenerationMetadata `json:"metadata"`
}

type GenerationMetadata struct {
	Category          string   `json:"category"`
	Length            string   `json:"length"`
	Hook              string   `json:"hook,omitempty"`
	AppliedTransforms []string `json:"applied_transforms"`
	Model             string   `json:"model,omitempty"`
}

type GenerationHistoryDTO struct {
	GenerationID string            `json:"generation_id"`
	Kind         string            `json:"kind"`
	Model        string            `json:"model"`
	Params       map[string]string `json:"params"`
	DurationMs   int64             `json:"duration_ms"`
	CreatedAt    string            `json:"created_at"`
}
