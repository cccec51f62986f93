package voice

import (
	"fmt"
	"strings"
)

const (
	blockHeader = "[Voice Profile]\nWrite in this user's personal voice. Follow every instruction below:"
	blockFooter = "[End Voice Profile]"
)

var sentenceLengthText = map[string]string{
	"short":  "Keep sentences short and punchy, mostly under 12 words.",
	"medium": "Use medium-length sentences, around 12 to 20 words.",
	"long":   "Use longer, flowing sentences that develop ideas fully.",
	"varied": "Vary sentence length, mixing short punchy lines with longer explanations.",
	"mixed":  "Vary sentence length, mixing short punchy lines with longer explanations.",
}

var humorText = map[string]string{
	"none":     "Do not use humor.",
	"never":    "Do not use humor.",
	"subtle":   "Use subtle, light humor sparingly.",
	"moderate": "Include some humor where it fits naturally.",
	"frequent": "Use humor often to keep the post entertaining.",
}

var questionText = map[string]string{
	"none":     "Do not ask the reader questions.",
	"never":    "Do not ask the reader questions.",
	"rare":     "Ask at most one question, only if it adds value.",
	"moderate": "Use a question or two to engage the reader.",
	"frequent": "Use questions frequently to engage the reader.",
	"ending":   "End the post with a question to the reader.",
}

var emojiText = map[string]string{
	"none":     "Do not use any emoji.",
	"never":    "Do not use any emoji.",
	"minimal":  "Use at most one or two emoji.",
	"moderate": "Use a few emoji to add emphasis.",
	"frequent": "Use emoji generously throughout the post.",
}

type rule func(p *Profile) (string, bool)

// 顺序固定：词汇 -> 句式 -> 结构 -> 直接程度 -> 自信 -> 能量 -> 语气 -> 正式程度 -> 叙事 -> 幽默 -> 提问 -> emoji -> 开头
var rules = []rule{
	func(p *Profile) (string, bool) {
		return listDirective("Naturally use words this user favors: %s.", p.FrequentWords, maxFrequentWords, false)
	},
	func(p *Profile) (string, bool) {
		return listDirective("Use this industry terminology where relevant: %s.", p.IndustryJargon, maxJargon, false)
	},
	func(p *Profile) (string, bool) {
		return listDirective("Work in the user's signature expressions when they fit: %s.", p.SignatureExpressions, maxSignature, true)
	},
	func(p *Profile) (string, bool) {
		return listDirective("Never use these words or phrases: %s.", p.NeverUsePhrases, maxNeverUse, true)
	},
	func(p *Profile) (string, bool) {
		return keyedDirective(sentenceLengthText, p.SentenceLength, "Sentence length preference: %s.")
	},
	func(p *Profile) (string, bool) {
		return listDirective("Structure the post using these patterns: %s.", p.StructurePatterns, maxStructure, false)
	},
	func(p *Profile) (string, bool) {
		return scaleDirective(&directnessScale, p.Directness, "Directness: %s.")
	},
	func(p *Profile) (string, bool) {
		return scaleDirective(&confidenceScale, p.Confidence, "Confidence: %s.")
	},
	func(p *Profile) (string, bool) {
		return scaleDirective(&energyScale, p.Energy, "Energy: %s.")
	},
	func(p *Profile) (string, bool) {
		return textDirective("Write in a %s tone.", p.Tone)
	},
	func(p *Profile) (string, bool) {
		return scaleDirective(&formalityScale, p.Formality, "Formality: %s.")
	},
	func(p *Profile) (string, bool) {
		return textDirective("Storytelling style: %s.", p.StorytellingStyle)
	},
	func(p *Profile) (string, bool) {
		return keyedDirective(humorText, p.HumorUsage, "Humor: %s.")
	},
	func(p *Profile) (string, bool) {
		return keyedDirective(questionText, p.QuestionUsage, "Questions: %s.")
	},
	func(p *Profile) (string, bool) {
		return keyedDirective(emojiText, p.EmojiUsage, "Emoji usage: %s.")
	},
	func(p *Profile) (string, bool) {
		return listDirective("Open with a hook in one of these styles: %s.", p.PreferredHooks, maxPreferredHooks, false)
	},
}

// BuildDirectives 按固定顺序为每个已设置的字段生成一条指令
func BuildDirectives(p *Profile) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, r := range rules {
		if d, ok := r(p); ok {
			out = append(out, d)
		}
	}
	return out
}

// BuildBlock 生成带头尾的指令块；没有任何指令时返回空串
func BuildBlock(p *Profile) string {
	directives := BuildDirectives(p)
	if len(directives) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(blockHeader)
	sb.WriteString("\n")
	for _, d := range directives {
		sb.WriteString("- ")
		sb.WriteString(d)
		sb.WriteString("\n")
	}
	sb.WriteString(blockFooter)
	return sb.String()
}

func listDirective(tmpl string, items []string, limit int, quote bool) (string, bool) {
	cleaned := make([]string, 0, limit)
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if quote {
			it = `"` + it + `"`
		}
		cleaned = append(cleaned, it)
		if len(cleaned) == limit {
			break
		}
	}
	if len(cleaned) == 0 {
		return "", false
	}
	return fmt.Sprintf(tmpl, strings.Join(cleaned, ", ")), true
}

func textDirective(tmpl, v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return fmt.Sprintf(tmpl, v), true
}

// keyedDirective 已知取值用固定句子，其余按通用模板输出
func keyedDirective(table map[string]string, v, fallback string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if text, ok := table[strings.ToLower(v)]; ok {
		return text, true
	}
	return fmt.Sprintf(fallback, v), true
}

func scaleDirective(table *[10]string, v *int, tmpl string) (string, bool) {
	text, ok := scaleText(table, v)
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tmpl, text), true
}
