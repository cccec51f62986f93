package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type EditHandler struct {
	editSvc     service.EditService
	insightsSvc service.InsightsService
}

func NewEditHandler(editSvc service.EditService, insightsSvc service.InsightsService) *EditHandler {
	return &EditHandler{
		editSvc:     editSvc,
		insightsSvc: insightsSvc,
	}
}

// Track 立即返回，修改在防抖窗口结束后异步记录
func (s *EditHandler) Track(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.TrackEditDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.editSvc.Track(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"accepted": true})
}

func (s *EditHandler) Insights(c *gin.Context) {
	userID := c.GetUint64("user_id")

	insights, err := s.insightsSvc.EditInsights(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insights)
}
