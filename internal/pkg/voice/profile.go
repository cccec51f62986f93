// Package voice 把用户的写作风格档案翻译成一组有序的生成指令
package voice

// Profile 风格档案，所有字段可缺省；nil / 空串 / 空列表表示未设置
type Profile struct {
	FrequentWords        []string
	IndustryJargon       []string
	SignatureExpressions []string
	NeverUsePhrases      []string
	PreferredHooks       []string

	SentenceLength    string
	StructurePatterns []string
	Tone              string
	StorytellingStyle string
	HumorUsage        string
	QuestionUsage     string
	EmojiUsage        string

	Directness *int
	Confidence *int
	Energy     *int
	Formality  *int
}

// 列表字段的预览上限
const (
	maxFrequentWords   = 10
	maxJargon          = 8
	maxSignature       = 3
	maxNeverUse        = 10
	maxStructure       = 5
	maxPreferredHooks  = 2
	scaleMin, scaleMax = 1, 10
)

var directnessScale = [10]string{
	"extremely subtle and indirect",
	"very gentle and suggestive",
	"soft-spoken and tactful",
	"diplomatic",
	"balanced between tact and clarity",
	"clear and straightforward",
	"direct",
	"very direct",
	"blunt and no-nonsense",
	"bluntly direct",
}

var confidenceScale = [10]string{
	"extremely humble and tentative",
	"very modest",
	"modest",
	"measured",
	"quietly confident",
	"confident",
	"assured",
	"very confident",
	"bold and authoritative",
	"supreme confidence",
}

var energyScale = [10]string{
	"extremely calm and understated",
	"very calm",
	"relaxed",
	"steady",
	"moderately lively",
	"upbeat",
	"energetic",
	"very energetic",
	"high-energy and enthusiastic",
	"extreme energy",
}

var formalityScale = [10]string{
	"extremely casual and conversational",
	"very casual",
	"casual",
	"relaxed but polished",
	"neutral",
	"professional",
	"polished and professional",
	"formal",
	"very formal",
	"extremely formal",
}

// scaleText 越界或缺省返回 false，不做截断
func scaleText(table *[10]string, v *int) (string, bool) {
	if v == nil || *v < scaleMin || *v > scaleMax {
		return "", false
	}
	return table[*v-1], true
}
