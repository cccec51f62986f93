package consts

// 角色
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// 帖子状态
const (
	PostStatusDraft    = "draft"
	PostStatusUsed     = "used"
	PostStatusArchived = "archived"
)

// 选题来源
const (
	PromptSourceAdmin  = "admin"
	PromptSourceSystem = "system"
)

// 篇幅
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// 反馈来源
const (
	FeedbackSourcePost = "post"
	FeedbackSourceUser = "user"
)

const (
	// PromptBatchSize 每次批量生成的选题数
	PromptBatchSize = 12
	// DateLayout 排期日期格式
	DateLayout = "2006-01-02"
)
