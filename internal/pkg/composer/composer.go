// Package composer 组装发给模型的 system / user 提示词
package composer

import (
	"embed"
	"strings"

	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/promptparse"

	"github.com/tmc/langchaingo/prompts"
)

//go:embed prompts/*.txt
var promptFS embed.FS

var (
	draftSystem  = mustRead("prompts/draft_system.txt")
	batchSystem  = mustRead("prompts/batch_system.txt")
	draftUser    = prompts.NewPromptTemplate(mustRead("prompts/draft_user.txt"), []string{"title", "category", "hook", "length_guide", "prompt_text", "pillar"})
	hashtagsUser = prompts.NewPromptTemplate(mustRead("prompts/hashtags.txt"), []string{"content"})
	batchUser    = prompts.NewPromptTemplate(mustRead("prompts/batch_user.txt"), []string{"industry", "audience", "pillars", "feedback"})
)

func mustRead(name string) string {
	b, err := promptFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return strings.TrimSpace(string(b))
}

// 各篇幅的输出 token 上限
var maxTokensByLength = map[string]int{
	consts.LengthShort:  500,
	consts.LengthMedium: 700,
	consts.LengthLong:   1000,
}

var lengthGuide = map[string]string{
	consts.LengthShort:  "short, roughly 80 to 150 words",
	consts.LengthMedium: "medium, roughly 150 to 250 words",
	consts.LengthLong:   "long, roughly 250 to 400 words",
}

const (
	// BatchMaxTokens 批量选题的输出上限
	BatchMaxTokens = 3000
	// HashtagMaxTokens 标签调用的输出上限
	HashtagMaxTokens = 100

	DraftTemperature   = 0.7
	BatchTemperature   = 0.8
	HashtagTemperature = 0.3
)

// NormalizeLength 未知篇幅按 medium 处理
func NormalizeLength(length string) string {
	l := strings.ToLower(strings.TrimSpace(length))
	if _, ok := maxTokensByLength[l]; ok {
		return l
	}
	return consts.LengthMedium
}

// MaxTokens 按篇幅返回输出 token 上限
func MaxTokens(length string) int {
	return maxTokensByLength[NormalizeLength(length)]
}

// DraftInput 单篇稿件的请求参数
type DraftInput struct {
	Title      string
	Hook       string
	Category   string
	Length     string
	PromptText string
	Pillar     string
}

// DraftSystemPrompt 固定角色说明 + 格式示例 + 个性化指令块（可为空）
func DraftSystemPrompt(category, voiceBlock string) string {
	var sb strings.Builder
	sb.WriteString(draftSystem)

	cat := promptparse.NormalizeCategory(category)
	sb.WriteString("\n\nFormat: ")
	sb.WriteString(cat)
	sb.WriteString("\nExample of this format (match the structure, not the topic):\n\"\"\"\n")
	sb.WriteString(ExampleFor(cat))
	sb.WriteString("\n\"\"\"")

	if voiceBlock != "" {
		sb.WriteString("\n\n")
		sb.WriteString(voiceBlock)
	}
	return sb.String()
}

// DraftUserPrompt 具体请求参数
func DraftUserPrompt(in DraftInput) (string, error) {
	length := NormalizeLength(in.Length)
	return draftUser.Format(map[string]any{
		"title":        strings.TrimSpace(in.Title),
		"category":     promptparse.NormalizeCategory(in.Category),
		"hook":         strings.TrimSpace(in.Hook),
		"length_guide": lengthGuide[length],
		"prompt_text":  strings.TrimSpace(in.PromptText),
		"pillar":       strings.TrimSpace(in.Pillar),
	})
}

// HashtagPrompts 标签调用的 system / user
func HashtagPrompts(content string) (string, string, error) {
	user, err := hashtagsUser.Format(map[string]any{"content": content})
	if err != nil {
		return "", "", err
	}
	return "You suggest LinkedIn hashtags.", user, nil
}

// BatchInput 批量选题的用户上下文
type BatchInput struct {
	Industry string
	Audience string
	Pillars  []string
	Feedback []string
	// VoiceBlock 个性化指令块，可为空
	VoiceBlock string
}

// BatchPrompts 批量选题的 system / user
func BatchPrompts(in BatchInput) (string, string, error) {
	system := batchSystem
	if in.VoiceBlock != "" {
		system += "\n\nThe prompts should suit this user's voice:\n" + in.VoiceBlock
	}

	pillars := make([]string, 0, len(in.Pillars))
	for _, p := range in.Pillars {
		if p = strings.TrimSpace(p); p != "" {
			pillars = append(pillars, p)
		}
	}

	user, err := batchUser.Format(map[string]any{
		"industry": strings.TrimSpace(in.Industry),
		"audience": strings.TrimSpace(in.Audience),
		"pillars":  pillars,
		"feedback": in.Feedback,
	})
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}
