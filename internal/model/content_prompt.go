package model

import (
	"time"
)

// ContentPrompt 排期中的选题
type ContentPrompt struct {
	ID                uint64 `gorm:"primaryKey" json:"id"`
	UserID            uint64 `gorm:"not null;index:idx_user_used" json:"user_id"`
	Category          string `gorm:"type:varchar(64);not null" json:"category"`
	PillarNumber      int    `gorm:"type:tinyint;not null;default:1" json:"pillar_number"` // 1-3
	PillarDescription string `gorm:"type:varchar(255)" json:"pillar_description"`
	PromptText        string `gorm:"type:text;not null" json:"prompt_text"`
	Hook              string `gorm:"type:varchar(512)" json:"hook"`
	// YYYY-MM-DD，可为空
	ScheduledDate    *string   `gorm:"type:varchar(10);index:idx_scheduled_date" json:"scheduled_date"`
	IsUsed           bool      `gorm:"type:tinyint(1);not null;default:0;index:idx_user_used" json:"is_used"`
	PushedToCalendar bool      `gorm:"type:tinyint(1);not null;default:0" json:"pushed_to_calendar"`
	Source           string    `gorm:"type:varchar(16);not null;default:'admin'" json:"source"` // admin / system
	CreatedBy        uint64    `gorm:"not null;default:0" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ContentPrompt) TableName() string {
	return "content_prompts"
}
