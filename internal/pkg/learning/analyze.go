// Package learning 从用户对 AI 稿件的修改中提炼学习信号，并在新稿件上提前应用高频修改
package learning

import (
	"strings"
	"unicode/utf8"
)

// 学习信号
const (
	SignalShorter       = "shorter content"
	SignalLonger        = "longer content"
	SignalRemovedEmoji  = "removed emoji"
	SignalAddedEmoji    = "added emoji"
	SignalProfessional  = "professional tone"
	SignalAddedCTA      = "added call-to-action"
	SignalBullets       = "structure with bullet points"
	SignalAddedQuestion = "added question"
)

// 修改类型
const (
	EditTypeShortened = "shortened"
	EditTypeExpanded  = "expanded"
	EditTypeRefined   = "refined"
)

// 修改幅度
const (
	SignificanceMinor    = "minor"
	SignificanceModerate = "moderate"
	SignificanceMajor    = "major"
)

const (
	lengthSignalRatio = 0.1
	refinedRatio      = 0.05
	minorRatio        = 0.1
	moderateRatio     = 0.3
)

// casualWords 口语化用词，被删掉视为向专业语气调整
var casualWords = []string{"awesome", "super", "love", "amazing", "crazy", "gonna", "wanna", "lol"}

var ctaWords = []string{"comment", "share", "connect"}

// Analysis 一次修改的分析结果
type Analysis struct {
	CharDelta    int
	EditType     string
	Significance string
	Signals      []string
}

// Analyze 比较原稿与修改稿；CharDelta 为修改稿减原稿的字符（rune）数
func Analyze(original, edited string) Analysis {
	origLen := utf8.RuneCountInString(original)
	editLen := utf8.RuneCountInString(edited)
	delta := editLen - origLen

	base := float64(max(origLen, 1))
	lengthRatio := float64(abs(delta)) / base

	a := Analysis{
		CharDelta:    delta,
		EditType:     editType(delta, lengthRatio),
		Significance: significance(max(lengthRatio, wordChangeRatio(original, edited))),
	}
	a.Signals = deriveSignals(original, edited, delta, lengthRatio)
	return a
}

func editType(delta int, ratio float64) string {
	switch {
	case ratio < refinedRatio:
		return EditTypeRefined
	case delta < 0:
		return EditTypeShortened
	default:
		return EditTypeExpanded
	}
}

func significance(ratio float64) string {
	switch {
	case ratio < minorRatio:
		return SignificanceMinor
	case ratio < moderateRatio:
		return SignificanceModerate
	default:
		return SignificanceMajor
	}
}

func deriveSignals(original, edited string, delta int, lengthRatio float64) []string {
	var signals []string

	if lengthRatio >= lengthSignalRatio {
		if delta < 0 {
			signals = append(signals, SignalShorter)
		} else {
			signals = append(signals, SignalLonger)
		}
	}

	origEmoji, editEmoji := countEmoji(original), countEmoji(edited)
	if editEmoji < origEmoji {
		signals = append(signals, SignalRemovedEmoji)
	} else if editEmoji > origEmoji {
		signals = append(signals, SignalAddedEmoji)
	}

	lo, le := strings.ToLower(original), strings.ToLower(edited)
	if strings.Count(edited, "!") < strings.Count(original, "!") || countWords(le, casualWords) < countWords(lo, casualWords) {
		signals = append(signals, SignalProfessional)
	}

	if !containsAny(lo, ctaWords) && containsAny(le, ctaWords) {
		signals = append(signals, SignalAddedCTA)
	}

	if countBulletLines(edited) > countBulletLines(original) {
		signals = append(signals, SignalBullets)
	}

	if strings.Count(edited, "?") > strings.Count(original, "?") {
		signals = append(signals, SignalAddedQuestion)
	}

	return signals
}

// wordChangeRatio 词级别差异占比
func wordChangeRatio(original, edited string) float64 {
	ow := strings.Fields(strings.ToLower(original))
	ew := strings.Fields(strings.ToLower(edited))
	total := max(len(ow), len(ew))
	if total == 0 {
		return 0
	}

	bag := make(map[string]int, len(ow))
	for _, w := range ow {
		bag[w]++
	}
	common := 0
	for _, w := range ew {
		if bag[w] > 0 {
			bag[w]--
			common++
		}
	}
	return 1 - float64(common)/float64(total)
}

func countWords(lower string, words []string) int {
	n := 0
	for _, w := range strings.FieldsFunc(lower, isWordSep) {
		for _, cw := range words {
			if w == cw {
				n++
			}
		}
	}
	return n
}

func isWordSep(r rune) bool {
	return !(r == '-' || r == '\'' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func countBulletLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, BulletPrefix) || strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
