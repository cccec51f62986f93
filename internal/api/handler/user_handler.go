package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authSvc  service.AuthService
	adminSvc service.UserAdminService
}

func NewUserHandler(authSvc service.AuthService, adminSvc service.UserAdminService) *UserHandler {
	return &UserHandler{
		authSvc:  authSvc,
		adminSvc: adminSvc,
	}
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) ListUsers(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.adminSvc.ListUsers(c.Request.Context(), &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) UpdateRole(c *gin.Context) {
	adminID := c.GetUint64("user_id")
	userID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateRoleDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.adminSvc.UpdateRole(c.Request.Context(), adminID, userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) SetDisabled(c *gin.Context) {
	adminID := c.GetUint64("user_id")
	userID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateDisabledDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.adminSvc.SetDisabled(c.Request.Context(), adminID, userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
