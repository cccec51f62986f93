package learning

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// BulletPrefix 列表行前缀
	BulletPrefix = "• "
	// CallToAction 追加的互动引导语
	CallToAction = "What's your take? Share your thoughts in the comments, and connect with me for more insights like this."

	maxParagraphRunes = 200
	truncatedRunes    = 180
	ellipsis          = "..."
	paragraphSep      = "\n\n"
	introSentences    = 2
	minBulletSplits   = 3
)

var emojiRegex = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2300}-\x{23FF}\x{2B00}-\x{2BFF}\x{1F1E6}-\x{1F1FF}\x{FE0F}\x{200D}\x{20E3}\x{E0020}-\x{E007F}]`)

var professionalSwaps = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`(?i)\bawesome\b`), "excellent"},
	{regexp.MustCompile(`(?i)\bsuper\b`), "very"},
	{regexp.MustCompile(`(?i)\blove\b`), "appreciate"},
}

// transform 一条改写规则：match 判断信号是否对应本规则
type transform struct {
	name  string
	match func(signal string) bool
	apply func(content string) string
}

// 规则按固定顺序串行执行，后一条作用于前一条的结果
var transforms = []transform{
	{name: "truncate", match: mentions("shorter", "content"), apply: truncateParagraphs},
	{name: "strip_emoji", match: mentions("removed", "emoji"), apply: stripEmoji},
	{name: "professional", match: mentions("professional", "tone"), apply: professionalTone},
	{name: "cta", match: mentions("added", "call-to-action"), apply: appendCallToAction},
	{name: "bullets", match: mentions("structure", "bullet"), apply: bulletize},
}

func mentions(words ...string) func(string) bool {
	return func(signal string) bool {
		s := strings.ToLower(signal)
		for _, w := range words {
			if !strings.Contains(s, w) {
				return false
			}
		}
		return true
	}
}

// ApplyTransforms 对 content 依次执行被 actionable 信号激活的规则，返回结果与生效的规则名
func ApplyTransforms(content string, actionable []string) (string, []string) {
	var applied []string
	for _, t := range transforms {
		if !anyMatch(actionable, t.match) {
			continue
		}
		content = t.apply(content)
		applied = append(applied, t.name)
	}
	return content, applied
}

func anyMatch(signals []string, match func(string) bool) bool {
	for _, s := range signals {
		if match(s) {
			return true
		}
	}
	return false
}

// truncateParagraphs 段落以空行分隔，段内换行计入长度
func truncateParagraphs(content string) string {
	paragraphs := strings.Split(content, paragraphSep)
	for i, p := range paragraphs {
		if utf8.RuneCountInString(p) > maxParagraphRunes {
			runes := []rune(p)
			paragraphs[i] = string(runes[:truncatedRunes]) + ellipsis
		}
	}
	return strings.Join(paragraphs, paragraphSep)
}

func stripEmoji(content string) string {
	return emojiRegex.ReplaceAllString(content, "")
}

func professionalTone(content string) string {
	content = strings.ReplaceAll(content, "!", ".")
	for _, s := range professionalSwaps {
		content = s.re.ReplaceAllStringFunc(content, func(m string) string {
			return matchCase(m, s.with)
		})
	}
	return content
}

// matchCase 保留原词首字母大小写
func matchCase(orig, repl string) string {
	r, _ := utf8.DecodeRuneInString(orig)
	if unicode.IsUpper(r) {
		rr := []rune(repl)
		rr[0] = unicode.ToUpper(rr[0])
		return string(rr)
	}
	return repl
}

func appendCallToAction(content string) string {
	if containsAny(strings.ToLower(content), ctaWords) {
		return content
	}
	return content + "\n\n" + CallToAction
}

func bulletize(content string) string {
	sentences := splitSentences(content)
	if len(sentences) <= minBulletSplits {
		return content
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(sentences[:introSentences], " "))
	sb.WriteString("\n")
	for _, s := range sentences[introSentences:] {
		sb.WriteString("\n")
		sb.WriteString(BulletPrefix)
		sb.WriteString(s)
	}
	return sb.String()
}

// splitSentences 按句末标点（可连续）与换行切句，丢弃空句
func splitSentences(content string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, strings.TrimSpace(strings.TrimPrefix(s, strings.TrimSpace(BulletPrefix))))
		}
		cur.Reset()
	}

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if isTerminator(r) {
			for i+1 < len(runes) && isTerminator(runes[i+1]) {
				i++
				cur.WriteRune(runes[i])
			}
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()

	filtered := out[:0]
	for _, s := range out {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func countEmoji(s string) int {
	return len(emojiRegex.FindAllStringIndex(s, -1))
}
