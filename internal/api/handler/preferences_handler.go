package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	prefsSvc service.PreferencesService
}

func NewPreferencesHandler(prefsSvc service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{
		prefsSvc: prefsSvc,
	}
}

func (s *PreferencesHandler) Get(c *gin.Context) {
	userID := c.GetUint64("user_id")

	prefs, err := s.prefsSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prefs)
}

func (s *PreferencesHandler) Update(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PreferencesDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	prefs, err := s.prefsSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, prefs)
}
