package dto

type TrackEditDTO struct {
	PostID          *uint64 `json:"post_id"`
	GenerationID    string  `json:"generation_id" validate:"max=64"`
	OriginalContent string  `json:"original_content" validate:"required"`
	EditedContent   string  `json:"edited_content"`
}

type SignalInsightDTO struct {
	Signal     string `json:"signal"`
	Count      int    `json:"count"`
	Actionable bool   `json:"actionable"`
}

type EditInsightsDTO struct {
	TotalEdits   int64              `json:"total_edits"`
	AvgCharDelta float64            `json:"avg_char_delta"`
	Significance map[string]int64   `json:"significance"`
	TopSignals   []SignalInsightDTO `json:"top_signals"`
	Actionable   []string           `json:"actionable"`
}
