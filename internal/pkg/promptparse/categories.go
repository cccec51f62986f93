package promptparse

import "strings"

// 六种内容格式
const (
	CategoryEducational = "Educational how-to post"
	CategoryStory       = "Personal story post"
	CategoryTrend       = "Industry trend analysis"
	CategoryContrarian  = "Contrarian opinion post"
	CategoryBehind      = "Behind-the-scenes post"
	CategoryEngagement  = "Engagement question post"
)

// DefaultCategory 缺省格式
const DefaultCategory = CategoryEducational

// Categories 按固定顺序排列
var Categories = []string{
	CategoryEducational,
	CategoryStory,
	CategoryTrend,
	CategoryContrarian,
	CategoryBehind,
	CategoryEngagement,
}

// 模型经常只返回关键词，按关键词归一
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"educational", CategoryEducational},
	{"how-to", CategoryEducational},
	{"how to", CategoryEducational},
	{"story", CategoryStory},
	{"trend", CategoryTrend},
	{"contrarian", CategoryContrarian},
	{"opinion", CategoryContrarian},
	{"behind", CategoryBehind},
	{"engagement", CategoryEngagement},
	{"question", CategoryEngagement},
}

// NormalizeCategory 把任意写法映射到六种格式之一，无法识别时返回缺省格式
func NormalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultCategory
	}
	for _, c := range Categories {
		if strings.ToLower(c) == s {
			return c
		}
	}
	for _, kw := range categoryKeywords {
		if strings.Contains(s, kw.keyword) {
			return kw.category
		}
	}
	return DefaultCategory
}

// IsApprovedCategory 是否为六种格式之一（精确匹配）
func IsApprovedCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
