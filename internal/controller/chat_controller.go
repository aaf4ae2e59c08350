package controller

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/service"
	"ai_course_backend/internal/store"
	"ai_course_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Service *service.ChatService
	Stores  *store.Manager
}

func NewChatController(svc *service.ChatService, stores *store.Manager) *ChatController {
	return &ChatController{Service: svc, Stores: stores}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Subject string `json:"subject" binding:"required"`
}

// @Summary Send a tutor chat message
// @Description Answers with the current lesson as context. A message that reads as a content-modification request returns needsConfirmation=true instead of an answer.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "chat message"
// @Success 200 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Send(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	subject := curriculum.Normalize(req.Subject)

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	view := st.View()
	var current *model.CourseContent
	if len(view.CourseContents) > 0 {
		content := view.CourseContents[view.CurrentContentIndex]
		current = &content
	}

	result, err := c.Service.Send(ctx, req.Message, subject, view.ChatMessages, current)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "chat unavailable")
		return
	}

	st.AddChatMessage(ctx, "user", req.Message)
	st.AddChatMessage(ctx, "model", result.Response)

	util.Success(ctx, result)
}
