package dto

// PreferencesDTO 数值刻度在接口层限定 1-10
type PreferencesDTO struct {
	FrequentWords        []string `json:"frequent_words" validate:"max=30,dive,max=64"`
	IndustryJargon       []string `json:"industry_jargon" validate:"max=30,dive,max=64"`
	SignatureExpressions []string `json:"signature_expressions" validate:"max=10,dive,max=255"`
	NeverUsePhrases      []string `json:"never_use_phrases" validate:"max=30,dive,max=255"`
	PreferredHooks       []string `json:"preferred_hooks" validate:"max=10,dive,max=64"`
	StructurePatterns    []string `json:"structure_patterns" validate:"max=10,dive,max=64"`
	ContentPillars       []string `json:"content_pillars" validate:"max=3,dive,max=255"`

	SentenceLength    string `json:"sentence_length" validate:"max=32"`
	Tone              string `json:"tone" validate:"max=64"`
	StorytellingStyle string `json:"storytelling_style" validate:"max=64"`
	HumorUsage        string `json:"humor_usage" validate:"max=32"`
	QuestionUsage     string `json:"question_usage" validate:"max=32"`
	EmojiUsage        string `json:"emoji_usage" validate:"max=32"`

	Directness *int `json:"directness" validate:"omitempty,min=1,max=10"`
	Confidence *int `json:"confidence" validate:"omitempty,min=1,max=10"`
	Energy     *int `json:"energy" validate:"omitempty,min=1,max=10"`
	Formality  *int `json:"formality" validate:"omitempty,min=1,max=10"`

	Industry       string `json:"industry" validate:"max=128"`
	TargetAudience string `json:"target_audience" validate:"max=255"`
}
