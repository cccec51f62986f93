package dto

type PostFeedbackDTO struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type UserFeedbackDTO struct {
	Category string `json:"category" validate:"max=32"`
	Message  string `json:"message" validate:"required,max=5000"`
}

// FeedbackItemDTO 两种反馈来源的合并视图，按 Source 区分，ID 为各自表内的原始主键
type FeedbackItemDTO struct {
	Source    string  `json:"source"`
	ID        uint64  `json:"id"`
	UserID    uint64  `json:"user_id"`
	PostID    *uint64 `json:"post_id,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Comment   string  `json:"comment,omitempty"`
	Category  string  `json:"category,omitempty"`
	Message   string  `json:"message,omitempty"`
	CreatedAt string  `json:"created_at"`
}
