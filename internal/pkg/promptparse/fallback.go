package promptparse

// 模型产出不足 12 条时的补位选题，格式按 i%6 轮换、支柱按 i%3 轮换
var fallbackPool = []Draft{
	{
		Category:     CategoryEducational,
		PillarNumber: 1,
		Hook:         "Most people overcomplicate this. Here is the 3-step version.",
		PromptText:   "Break down a process from your daily work into three concrete steps a newcomer could follow this week.",
	},
	{
		Category:     CategoryStory,
		PillarNumber: 2,
		Hook:         "The mistake that changed how I work.",
		PromptText:   "Share a specific professional mistake, what it cost you, and the habit you built because of it.",
	},
	{
		Category:     CategoryTrend,
		PillarNumber: 3,
		Hook:         "Everyone is talking about this shift. Few are preparing for it.",
		PromptText:   "Pick one change happening in your industry right now and explain what it means for people in your role over the next year.",
	},
	{
		Category:     CategoryContrarian,
		PillarNumber: 1,
		Hook:         "Unpopular opinion: the standard advice is wrong.",
		PromptText:   "Challenge a piece of common advice in your field and explain what you do instead and why it works better for you.",
	},
	{
		Category:     CategoryBehind,
		PillarNumber: 2,
		Hook:         "What nobody sees before the launch.",
		PromptText:   "Walk through the unglamorous work behind a recent project: the tools, the decisions and the part that took longest.",
	},
	{
		Category:     CategoryEngagement,
		PillarNumber: 3,
		Hook:         "I am curious how others handle this.",
		PromptText:   "Ask your network a focused question about a challenge you are facing and share your own current approach first.",
	},
	{
		Category:     CategoryEducational,
		PillarNumber: 1,
		Hook:         "Save this checklist for your next project.",
		PromptText:   "Write a short checklist of the things you verify before calling a piece of work done, with one sentence on each.",
	},
	{
		Category:     CategoryStory,
		PillarNumber: 2,
		Hook:         "A conversation I still think about.",
		PromptText:   "Describe a conversation with a mentor, client or colleague that shifted your perspective, and what you took from it.",
	},
	{
		Category:     CategoryTrend,
		PillarNumber: 3,
		Hook:         "Three signals I am watching this quarter.",
		PromptText:   "List three early signals you see in your market and what each one suggests about where things are heading.",
	},
	{
		Category:     CategoryContrarian,
		PillarNumber: 1,
		Hook:         "We need to stop celebrating this.",
		PromptText:   "Name a behavior your industry rewards that you believe does more harm than good, and propose a better alternative.",
	},
	{
		Category:     CategoryBehind,
		PillarNumber: 2,
		Hook:         "A day in my work, without the highlight reel.",
		PromptText:   "Share how a typical working day actually goes for you, including one thing that went wrong and how you handled it.",
	},
	{
		Category:     CategoryEngagement,
		PillarNumber: 3,
		Hook:         "Quick poll for my network.",
		PromptText:   "Pose a this-or-that question about a decision professionals in your field face, explain both sides briefly and invite answers.",
	},
}

// FallbackPool 返回补位选题的副本
func FallbackPool() []Draft {
	out := make([]Draft, len(fallbackPool))
	copy(out, fallbackPool)
	return out
}
