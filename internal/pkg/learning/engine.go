package learning

import (
	"context"
	"fmt"
	log "log/slog"
	"sort"
)

const (
	// DefaultWindow 取最近多少条带信号的修改记录
	DefaultWindow = 10
	// DefaultThreshold 信号出现次数达到该值即视为可执行
	DefaultThreshold = 2
)

// SignalSource 提供用户最近修改记录的信号列表，按时间倒序，仅包含信号非空的记录
type SignalSource interface {
	RecentSignals(ctx context.Context, userID uint64, limit int) ([][]string, error)
}

// SignalCount 信号及其出现次数
type SignalCount struct {
	Signal     string `json:"signal"`
	Count      int    `json:"count"`
	Actionable bool   `json:"actionable"`
}

// Result 一次改写的结果
type Result struct {
	Content string
	// Improvements 可执行信号数量，用于"已应用 N 项改进"的提示
	Improvements int
	Actionable   []string
	Applied      []string
}

// Engine 读取修改历史快照并改写新内容；任何内部错误都原样返回输入
type Engine struct {
	source    SignalSource
	window    int
	threshold int
}

type Option func(*Engine)

func WithWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.window = n
		}
	}
}

func WithThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.threshold = n
		}
	}
}

func NewEngine(source SignalSource, opts ...Option) *Engine {
	e := &Engine{source: source, window: DefaultWindow, threshold: DefaultThreshold}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Apply 对新生成的内容应用高频修改
func (e *Engine) Apply(ctx context.Context, userID uint64, content string) (res Result) {
	res = Result{Content: content}

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "edit learning panicked, returning original content", "user_id", userID, "panic", fmt.Sprint(r))
			res = Result{Content: content}
		}
	}()

	if e == nil || e.source == nil || content == "" {
		return res
	}

	lists, err := e.source.RecentSignals(ctx, userID, e.window)
	if err != nil {
		log.WarnContext(ctx, "load edit signals failed, skip learning", "user_id", userID, "err", err)
		return res
	}

	actionable := Actionable(Aggregate(lists, e.threshold))
	if len(actionable) == 0 {
		return res
	}

	out, applied := ApplyTransforms(content, actionable)
	return Result{
		Content:      out,
		Improvements: len(actionable),
		Actionable:   actionable,
		Applied:      applied,
	}
}

// Aggregate 统计信号频次，按次数降序、信号名升序排列
func Aggregate(lists [][]string, threshold int) []SignalCount {
	counts := make(map[string]int)
	for _, l := range lists {
		for _, s := range l {
			if s == "" {
				continue
			}
			counts[s]++
		}
	}

	out := make([]SignalCount, 0, len(counts))
	for s, c := range counts {
		out = append(out, SignalCount{Signal: s, Count: c, Actionable: c >= threshold})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Signal < out[j].Signal
	})
	return out
}

// Actionable 取出可执行的信号名
func Actionable(counts []SignalCount) []string {
	var out []string
	for _, c := range counts {
		if c.Actionable {
			out = append(out, c.Signal)
		}
	}
	return out
}
