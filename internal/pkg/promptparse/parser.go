// Package promptparse 将模型返回的多段选题文本解析为结构化选题，不足时用补位选题凑满
package promptparse

import (
	"errors"
	"strconv"
	"strings"
)

// BatchSize 每批选题数
const BatchSize = 12

// BlockDelimiter 选题块分隔符
const BlockDelimiter = "---"

var ErrMalformedOutput = errors.New("could not assemble a full prompt batch from model output")

// Draft 解析出的单条选题，尚未分配日期
type Draft struct {
	Category          string
	PillarNumber      int
	PillarDescription string
	Hook              string
	PromptText        string
	// Fallback 是否来自补位池
	Fallback bool
}

const (
	labelCategory = "category"
	labelPillar   = "pillar"
	labelHook     = "hook"
	labelPrompt   = "prompt"
)

var labels = []string{labelCategory, labelPillar, labelHook, labelPrompt}

// Parse 解析模型输出，始终返回 BatchSize 条选题：先放解析成功的，再按顺序补位
func Parse(text string, pillars []string) ([]Draft, error) {
	return parseWithPool(text, pillars, fallbackPool)
}

func parseWithPool(text string, pillars []string, pool []Draft) ([]Draft, error) {
	drafts := make([]Draft, 0, BatchSize)
	for _, block := range strings.Split(text, BlockDelimiter) {
		if d, ok := parseBlock(block); ok {
			drafts = append(drafts, d)
		}
		if len(drafts) == BatchSize {
			break
		}
	}

	for i := 0; len(drafts) < BatchSize && i < len(pool); i++ {
		fb := pool[i]
		fb.Fallback = true
		drafts = append(drafts, fb)
	}

	if len(drafts) < BatchSize {
		return nil, ErrMalformedOutput
	}

	for i := range drafts {
		drafts[i].PillarDescription = PillarDescription(drafts[i].PillarNumber, pillars)
	}
	return drafts, nil
}

func parseBlock(block string) (Draft, bool) {
	var d Draft
	var category, pillar string
	last := ""

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		label, rawKey, value, ok := splitLabel(line)
		if !ok {
			// 选题正文可能换行
			if last == labelPrompt && d.PromptText != "" {
				d.PromptText += " " + cleanValue(line)
			}
			continue
		}

		switch label {
		case labelCategory:
			category = value
		case labelPillar:
			pillar = value
			// "Pillar 2: Growth" 数字写在标签里
			if !hasDigit(value) {
				lk := strings.ToLower(rawKey)
				pillar = lk[strings.Index(lk, labelPillar)+len(labelPillar):]
			}
		case labelHook:
			d.Hook = value
		case labelPrompt:
			d.PromptText = value
		}
		last = label
	}

	if d.PromptText == "" {
		d.PromptText = d.Hook
	}
	if d.PromptText == "" {
		return Draft{}, false
	}

	d.Category = NormalizeCategory(category)
	d.PillarNumber = ParsePillarNumber(pillar)
	return d, true
}

// splitLabel 识别 "**Category:** xxx"、"- Hook: xxx" 等写法
func splitLabel(line string) (label, rawKey, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", "", false
	}

	rawKey = line[:idx]
	key := strings.ToLower(strings.Trim(rawKey, "*_#->` \t0123456789."))
	for _, l := range labels {
		if strings.HasPrefix(key, l) {
			return l, rawKey, cleanValue(line[idx+1:]), true
		}
	}
	return "", "", "", false
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, "*_`")
	v = strings.TrimSpace(v)
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	return strings.TrimSpace(v)
}

// ParsePillarNumber 取第一个数字，缺省为 1，限制在 [1,3]
func ParsePillarNumber(v string) int {
	for _, r := range v {
		if r >= '0' && r <= '9' {
			return clampPillar(int(r - '0'))
		}
	}
	return 1
}

func clampPillar(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// PillarDescription 按序号取用户的内容支柱描述，缺失时返回 "Pillar N"
func PillarDescription(n int, pillars []string) string {
	if n >= 1 && n <= len(pillars) {
		if desc := strings.TrimSpace(pillars[n-1]); desc != "" {
			return desc
		}
	}
	return "Pillar " + strconv.Itoa(n)
}
