package model

import (
	"time"
)

// PostFeedback 针对单篇稿件的评分
type PostFeedback struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	Rating    int       `gorm:"type:tinyint;not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (PostFeedback) TableName() string {
	return "post_feedback"
}

// UserFeedback 用户对产品的整体反馈
type UserFeedback struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Category  string    `gorm:"type:varchar(32)" json:"category"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (UserFeedback) TableName() string {
	return "user_feedback"
}
