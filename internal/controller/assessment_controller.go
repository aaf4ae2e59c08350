package controller

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/service"
	"ai_course_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.CourseService
}

func NewAssessmentController(svc *service.CourseService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

type GenerateAssessmentRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// @Summary Generate an assessment for the current lesson
// @Description Always yields a usable quiz; an unrecoverable completion degrades to a deterministic stub.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateAssessmentRequest true "subject"
// @Success 200 {object} util.Response
// @Router /api/assessments/generate [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.Service.GenerateAssessment(ctx, learnerID, curriculum.Normalize(req.Subject))
	if err != nil {
		if errors.Is(err, util.ErrNoCourseContent) {
			util.Error(ctx, http.StatusConflict, "no course content to assess")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"assessment": assessment})
}

// @Summary Submit an answer
// @Description MCQ answers are graded locally; theory and coding answers are graded by the model.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/assessments/answer [post]
func (c *AssessmentController) Answer(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.SubmitAnswer(ctx, learnerID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoActiveAssessment):
			util.Error(ctx, http.StatusConflict, "no active assessment")
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, answer)
}

type CompleteAssessmentRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// @Summary Complete the active assessment
// @Description Scores the attempt and, on a pass, records the score and marks the topic completed.
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CompleteAssessmentRequest true "subject"
// @Success 200 {object} util.Response
// @Router /api/assessments/complete [post]
func (c *AssessmentController) Complete(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.Service.CompleteAssessment(ctx, learnerID, curriculum.Normalize(req.Subject))
	if err != nil {
		if errors.Is(err, util.ErrNoActiveAssessment) {
			util.Error(ctx, http.StatusConflict, "no active assessment")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
