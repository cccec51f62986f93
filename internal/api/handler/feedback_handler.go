package handler

import (
	"Postcraft/internal/api/dto"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackSvc service.FeedbackService
}

func NewFeedbackHandler(feedbackSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackSvc: feedbackSvc,
	}
}

func (s *FeedbackHandler) SubmitPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	postID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PostFeedbackDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err = s.feedbackSvc.SubmitPostFeedback(c.Request.Context(), userID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FeedbackHandler) SubmitUser(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.UserFeedbackDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.feedbackSvc.SubmitUserFeedback(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FeedbackHandler) ListAll(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.feedbackSvc.ListAll(c.Request.Context(), &page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
