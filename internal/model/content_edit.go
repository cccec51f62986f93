package model

import (
	"time"

	"gorm.io/datatypes"
)

// ContentEdit 用户对 AI 稿件的一次修改
type ContentEdit struct {
	ID              uint64                      `gorm:"primaryKey" json:"id"`
	UserID          uint64                      `gorm:"not null;index:idx_user_created" json:"user_id"`
	PostID          *uint64                     `gorm:"index:idx_post_id" json:"post_id"`
	OriginalContent string                      `gorm:"type:text;not null" json:"original_content"`
	EditedContent   string                      `gorm:"type:text;not null" json:"edited_content"`
	CharDelta       int                         `gorm:"not null;default:0" json:"char_delta"`
	EditType        string                      `gorm:"type:varchar(16)" json:"edit_type"`
	Significance    string                      `gorm:"type:varchar(16)" json:"significance"`
	LearningSignals datatypes.JSONSlice[string] `gorm:"type:json" json:"learning_signals"`
	GenerationID    string                      `gorm:"type:varchar(64)" json:"generation_id"`
	CreatedAt       time.Time                   `gorm:"index:idx_user_created" json:"created_at"`
}

func (ContentEdit) TableName() string {
	return "content_edits"
}
