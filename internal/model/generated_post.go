package model

import (
	"time"

	"gorm.io/datatypes"
)

// GenerationMetadata 一次生成的参数与结果摘要
type GenerationMetadata struct {
	Category            string   `json:"category,omitempty"`
	Length              string   `json:"length,omitempty"`
	Hook                string   `json:"hook,omitempty"`
	PersonalizationUsed bool     `json:"personalization_used"`
	ImprovementsApplied int      `json:"improvements_applied"`
	AppliedTransforms   []string `json:"applied_transforms,omitempty"`
	GenerationID        string   `json:"generation_id,omitempty"`
	Model               string   `json:"model,omitempty"`
}

type GeneratedPost struct {
	ID                 uint64                                 `gorm:"primaryKey" json:"id"`
	UserID             uint64                                 `gorm:"not null;index:idx_user_status" json:"user_id"`
	Title              string                                 `gorm:"type:varchar(255)" json:"title"`
	Content            string                                 `gorm:"type:text;not null" json:"content"`
	Status             string                                 `gorm:"type:varchar(16);not null;default:'draft';index:idx_user_status" json:"status"`
	PromptID           *uint64                                `gorm:"index:idx_prompt_id" json:"prompt_id"`
	GenerationMetadata datatypes.JSONType[GenerationMetadata] `gorm:"type:json" json:"generation_metadata"`
	Hashtags           datatypes.JSONSlice[string]            `gorm:"type:json" json:"hashtags"`
	ScheduledDate      *string                                `gorm:"type:varchar(10)" json:"scheduled_date"`
	CreatedAt          time.Time                              `json:"created_at"`
	UpdatedAt          time.Time                              `json:"updated_at"`
}

func (GeneratedPost) TableName() string {
	return "generated_posts"
}
