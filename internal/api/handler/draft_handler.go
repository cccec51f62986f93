package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftSvc service.DraftService
}

func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftSvc: draftSvc,
	}
}

func (s *DraftHandler) Generate(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.GenerateDraftDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.draftSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *DraftHandler) History(c *gin.Context) {
	userID := c.GetUint64("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := s.draftSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
