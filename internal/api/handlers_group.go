package api

import (
	"Postcraft/internal/api/handler"
	"Postcraft/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PromptHandler      *handler.PromptHandler
	DraftHandler       *handler.DraftHandler
	PostHandler        *handler.PostHandler
	EditHandler        *handler.EditHandler
	PreferencesHandler *handler.PreferencesHandler
	FeedbackHandler    *handler.FeedbackHandler
	UserHandler        *handler.UserHandler

	// Accounts 鉴权中间件读取账号状态
	Accounts *service.AccountHolder
	// AllowedOrigins CORS 白名单
	AllowedOrigins []string
}
