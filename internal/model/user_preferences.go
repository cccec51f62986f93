package model

import (
	"time"

	"Postcraft/internal/pkg/voice"

	"gorm.io/datatypes"
)

// UserPreferences 用户的写作风格档案与选题上下文
type UserPreferences struct {
	UserID uint64 `gorm:"primaryKey" json:"user_id"`

	FrequentWords        datatypes.JSONSlice[string] `gorm:"type:json" json:"frequent_words"`
	IndustryJargon       datatypes.JSONSlice[string] `gorm:"type:json" json:"industry_jargon"`
	SignatureExpressions datatypes.JSONSlice[string] `gorm:"type:json" json:"signature_expressions"`
	NeverUsePhrases      datatypes.JSONSlice[string] `gorm:"type:json" json:"never_use_phrases"`
	PreferredHooks       datatypes.JSONSlice[string] `gorm:"type:json" json:"preferred_hooks"`
	StructurePatterns    datatypes.JSONSlice[string] `gorm:"type:json" json:"structure_patterns"`
	ContentPillars       datatypes.JSONSlice[string] `gorm:"type:json" json:"content_pillars"` // 最多 3 个

	SentenceLength    string `gorm:"type:varchar(32)" json:"sentence_length"`
	Tone              string `gorm:"type:varchar(64)" json:"tone"`
	StorytellingStyle string `gorm:"type:varchar(64)" json:"storytelling_style"`
	HumorUsage        string `gorm:"type:varchar(32)" json:"humor_usage"`
	QuestionUsage     string `gorm:"type:varchar(32)" json:"question_usage"`
	EmojiUsage        string `gorm:"type:varchar(32)" json:"emoji_usage"`

	Directness *int `gorm:"type:tinyint" json:"directness"`
	Confidence *int `gorm:"type:tinyint" json:"confidence"`
	Energy     *int `gorm:"type:tinyint" json:"energy"`
	Formality  *int `gorm:"type:tinyint" json:"formality"`

	Industry       string `gorm:"type:varchar(128)" json:"industry"`
	TargetAudience string `gorm:"type:varchar(255)" json:"target_audience"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// VoiceProfile 转成指令构建器的输入，nil 接收者返回 nil
func (p *UserPreferences) VoiceProfile() *voice.Profile {
	if p == nil {
		return nil
	}
	return &voice.Profile{
		FrequentWords:        p.FrequentWords,
		IndustryJargon:       p.IndustryJargon,
		SignatureExpressions: p.SignatureExpressions,
		NeverUsePhrases:      p.NeverUsePhrases,
		PreferredHooks:       p.PreferredHooks,
		SentenceLength:       p.SentenceLength,
		StructurePatterns:    p.StructurePatterns,
		Tone:                 p.Tone,
		StorytellingStyle:    p.StorytellingStyle,
		HumorUsage:           p.HumorUsage,
		QuestionUsage:        p.QuestionUsage,
		EmojiUsage:           p.EmojiUsage,
		Directness:           p.Directness,
		Confidence:           p.Confidence,
		Energy:               p.Energy,
		Formality:            p.Formality,
	}
}

// Pillars 去掉空白项后的内容支柱
func (p *UserPreferences) Pillars() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.ContentPillars))
	for _, s := range p.ContentPillars {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
