package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	promptSvc service.PromptService
}

func NewPromptHandler(promptSvc service.PromptService) *PromptHandler {
	return &PromptHandler{
		promptSvc: promptSvc,
	}
}

func (s *PromptHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.ListPromptsDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	prompts, err := s.promptSvc.List(c.Request.Context(), userID, req.IncludeUsed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prompts)
}

func (s *PromptHandler) UpdateSchedule(c *gin.Context) {
	userID := c.GetUint64("user_id")
	promptID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateScheduleDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	prompt, err := s.promptSvc.UpdateSchedule(c.Request.Context(), userID, promptID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prompt)
}

func (s *PromptHandler) Archive(c *gin.Context) {
	userID := c.GetUint64("user_id")
	promptID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.promptSvc.Archive(c.Request.Context(), userID, promptID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Generate 管理员为指定用户批量生成选题
func (s *PromptHandler) Generate(c *gin.Context) {
	adminID := c.GetUint64("user_id")

	var req dto.GeneratePromptsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.promptSvc.GenerateBatch(c.Request.Context(), adminID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
