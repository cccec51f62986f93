package dto

import "strings"

type PostDTO struct {
	ID                  uint64   `json:"id"`
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Status              string   `json:"status"`
	PromptID            *uint64  `json:"prompt_id"`
	Hashtags            []string `json:"hashtags"`
	ScheduledDate       *string  `json:"scheduled_date"`
	Category            string   `json:"category"`
	PersonalizationUsed bool     `json:"personalization_used"`
	ImprovementsApplied int      `json:"improvements_applied"`
	GenerationID        string   `json:"generation_id"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type ListPostsDTO struct {
	PageDTO
	Status string `form:"status" validate:"omitempty,oneof=draft used archived"`
}

// SavePostDTO 保存手写稿或 AI 稿
type SavePostDTO struct {
	Title         string   `json:"title" validate:"max=255"`
	Content       string   `json:"content" validate:"required"`
	PromptID      *uint64  `json:"prompt_id"`
	Hashtags      []string `json:"hashtags" validate:"max=10"`
	ScheduledDate *string  `json:"scheduled_date" validate:"omitempty,date_or_empty"`
	GenerationID  string   `json:"generation_id" validate:"max=64"`
	Category      string   `json:"category" validate:"max=64"`
	Length        string   `json:"length" validate:"omitempty,oneof=short medium long"`
}

// Normalize 校验前统一篇幅大小写，空日期视为未排期
func (d *SavePostDTO) Normalize() {
	d.Length = strings.ToLower(strings.TrimSpace(d.Length))
	if d.ScheduledDate != nil && *d.ScheduledDate == "" {
		d.ScheduledDate = nil
	}
}

type UpdatePostDTO struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	Content       *string  `json:"content" validate:"omitempty,min=1"`
	Hashtags      []string `json:"hashtags" validate:"max=10"`
	ScheduledDate *string  `json:"scheduled_date" validate:"omitempty,date_or_empty"`
}

type UpdatePostStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=used archived"`
}
