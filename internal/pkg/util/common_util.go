package util

import (
	"regexp"
	"strings"
)

var tagRegex = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractTags 只负责提取去重后的标签列表（不含 #）
func ExtractTags(rawContent string) []string {
	matches := tagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		if len(m) > 1 {
			tagName := strings.Trim(m[1], "._")
			if tagName == "" {
				continue
			}
			key := strings.ToLower(tagName)
			if _, exists := tagSet[key]; !exists {
				tagSet[key] = struct{}{}
				tags = append(tags, tagName)
			}
		}
	}

	return tags
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}

// FirstN 返回切片前 n 个元素
func FirstN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
