package controller

import (
	"ai_course_backend/internal/config"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Config *config.Config
}

func NewSessionController(cfg *config.Config) *SessionController {
	return &SessionController{Config: cfg}
}

// @Summary Create a guest session
// @Description Issues a learner id and a bearer token. No account needed.
// @Tags session
// @Produce json
// @Success 201 {object} util.Response
// @Router /api/session [post]
func (c *SessionController) Create(ctx *gin.Context) {
	learnerID := model.GenerateUUID()
	token, err := util.IssueSessionToken(learnerID, c.Config.Session.Secret, c.Config.Session.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"learnerId": learnerID,
		"token":     token,
		"expiresAt": time.Now().Add(c.Config.Session.ExpireTime).Unix(),
	})
}
