package dto

type PromptDTO struct {
	ID                uint64  `json:"id"`
	Category          string  `json:"category"`
	PillarNumber      int     `json:"pillar_number"`
	PillarDescription string  `json:"pillar_description"`
	PromptText        string  `json:"prompt_text"`
	Hook              string  `json:"hook"`
	ScheduledDate     *string `json:"scheduled_date"`
	IsUsed            bool    `json:"is_used"`
	PushedToCalendar  bool    `json:"pushed_to_calendar"`
	Source            string  `json:"source"`
}

type ListPromptsDTO struct {
	IncludeUsed bool `form:"include_used"`
}

// UpdateScheduleDTO scheduled_date 为空表示取消排期
type UpdateScheduleDTO struct {
	ScheduledDate    *string `json:"scheduled_date" validate:"omitempty,date_or_empty"`
	PushedToCalendar bool    `json:"pushed_to_calendar"`
}

type GeneratePromptsDTO struct {
	UserID          uint64 `json:"user_id" validate:"required"`
	IncludeFeedback bool   `json:"include_feedback"`
}

type GeneratePromptsResult struct {
	Success        bool   `json:"success"`
	GeneratedCount int    `json:"generated_count"`
	Message        string `json:"message"`
}
