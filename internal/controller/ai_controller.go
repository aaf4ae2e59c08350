package controller

import (
	"ai_course_backend/internal/service"
	"ai_course_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AIController exposes the generation helpers that do not touch course
// state: code evaluation, theory grading, explanations, reinforcement.
type AIController struct {
	Quiz *service.QuizService
}

func NewAIController(quiz *service.QuizService) *AIController {
	return &AIController{Quiz: quiz}
}

type CheckCodeRequest struct {
	Code      string   `json:"code" binding:"required"`
	Language  string   `json:"language" binding:"required"`
	TestCases []string `json:"testCases"`
}

// @Summary Evaluate submitted code
// @Tags gemini
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckCodeRequest true "code submission"
// @Success 200 {object} util.Response
// @Router /api/gemini/check-code [post]
func (c *AIController) CheckCode(ctx *gin.Context) {
	var req CheckCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	check, err := c.Quiz.CheckCode(ctx, req.Code, req.Language, req.TestCases)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "code evaluation unavailable")
		return
	}

	util.Success(ctx, check)
}

type GradeTheoryRequest struct {
	Question string   `json:"question" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
	Criteria []string `json:"criteria"`
	MaxScore float64  `json:"maxScore"`
}

// @Summary Grade a theory answer
// @Tags gemini
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GradeTheoryRequest true "answer to grade"
// @Success 200 {object} util.Response
// @Router /api/gemini/grade-theory [post]
func (c *AIController) GradeTheory(ctx *gin.Context) {
	var req GradeTheoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.MaxScore <= 0 {
		req.MaxScore = 10
	}

	grading, err := c.Quiz.GradeTheory(ctx, req.Question, req.Answer, req.Criteria, req.MaxScore)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "grading unavailable")
		return
	}

	util.Success(ctx, grading)
}

type ExplanationRequest struct {
	Question       string `json:"question" binding:"required"`
	SelectedOption string `json:"selectedOption" binding:"required"`
	CorrectOption  string `json:"correctOption" binding:"required"`
}

// @Summary Explain a wrong answer
// @Tags gemini
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExplanationRequest true "question context"
// @Success 200 {object} util.Response
// @Router /api/gemini/explanation [post]
func (c *AIController) Explanation(ctx *gin.Context) {
	var req ExplanationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	explanation, err := c.Quiz.Explain(ctx, req.Question, req.SelectedOption, req.CorrectOption)
	if err != nil {
		util.Error(ctx, http.StatusBadGateway, "explanation unavailable")
		return
	}

	util.Success(ctx, gin.H{"explanation": explanation})
}

type ReinforcementRequest struct {
	Question       string `json:"question" binding:"required"`
	SelectedOption string `json:"selectedOption" binding:"required"`
	CorrectOption  string `json:"correctOption" binding:"required"`
	Subject        string `json:"subject" binding:"required"`
}

// @Summary Generate reinforcement questions
// @Description Follow-up questions for a concept the learner answered wrong. A completion the repair cascade cannot recover is a 422.
// @Tags gemini
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReinforcementRequest true "missed question context"
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/gemini/reinforcement [post]
func (c *AIController) Reinforcement(ctx *gin.Context) {
	var req ReinforcementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.Quiz.Reinforcement(ctx, req.Question, req.SelectedOption, req.CorrectOption, req.Subject)
	if err != nil {
		if errors.Is(err, util.ErrUnparsableResponse) {
			util.UnprocessableEntity(ctx, "could not parse reinforcement questions from the model response")
			return
		}
		util.Error(ctx, http.StatusBadGateway, "reinforcement unavailable")
		return
	}

	util.Success(ctx, gin.H{"reinforcementQuestions": questions})
}
