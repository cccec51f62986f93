package composer

import "Postcraft/internal/pkg/promptparse"

// 每种格式的示例，放进 system prompt 作为风格参照
var categoryExamples = map[string]string{
	promptparse.CategoryEducational: `I cut our weekly reporting time from 4 hours to 40 minutes.

Here is the exact process:

1. Write the questions the report must answer before opening a spreadsheet.
2. Pull only the data that answers them.
3. Automate the pull, never the judgement.

The report got shorter. The decisions got better.`,

	promptparse.CategoryStory: `Six years ago I walked out of a client meeting and cried in the stairwell.

I had promised a deadline I knew we could not hit.

That afternoon I called the client back and told the truth. We lost the bonus. We kept the client for five more years.

Saying "not yet" is cheaper than saying "sorry" later.`,

	promptparse.CategoryTrend: `Hiring managers in my network are asking a new question in interviews:

"Show me something you automated."

Two years ago it was a nice extra. Now it is a filter.

The people who will grow fastest this year are not the best tool users. They are the best at deciding what should not be done by hand at all.`,

	promptparse.CategoryContrarian: `Unpopular opinion: "over-communicate" is bad advice.

Most teams do not suffer from too little communication. They suffer from too many messages that say nothing.

Send fewer updates. Make each one contain a decision, a date, or a question.`,

	promptparse.CategoryBehind: `What our launch actually looked like:

- 3 rewrites of the pricing page
- 1 bug found 40 minutes before go-live
- 0 people sleeping properly the night before

The polished announcement you saw took 11 minutes to write. Everything before it took 9 weeks.`,

	promptparse.CategoryEngagement: `I am rethinking how I run 1:1s.

Option A: a fixed agenda every week.
Option B: the report owns the agenda completely.

I have done both and I am still not sure which builds more trust.

Which one works for your team, and why?`,
}

// ExampleFor 返回格式示例，未知格式回落到缺省格式
func ExampleFor(category string) string {
	if ex, ok := categoryExamples[category]; ok {
		return ex
	}
	return categoryExamples[promptparse.NormalizeCategory(category)]
}
