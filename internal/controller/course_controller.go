package controller

import (
	"ai_course_backend/internal/curriculum"
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/repository"
	"ai_course_backend/internal/service"
	"ai_course_backend/internal/store"
	"ai_course_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
	Stores  *store.Manager
	Archive *repository.ContentArchiveRepository
}

func NewCourseController(svc *service.CourseService, stores *store.Manager, archive *repository.ContentArchiveRepository) *CourseController {
	return &CourseController{Service: svc, Stores: stores, Archive: archive}
}

func (c *CourseController) subject(ctx *gin.Context) string {
	return curriculum.Normalize(ctx.Param("subject"))
}

// @Summary Start or resume a subject
// @Description Generates the first lesson, builds the topic index and restores saved progress.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/start [post]
func (c *CourseController) Start(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.StartSubject(ctx, learnerID, c.subject(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Advance to the next topic
// @Description Refused with a reason flag unless the current assessment exists and is passed.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/next [post]
func (c *CourseController) Next(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.NextTopic(ctx, learnerID, c.subject(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Go back to the previous topic
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/previous [post]
func (c *CourseController) Previous(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.PreviousTopic(ctx, learnerID, c.subject(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

type RegenerateRequest struct {
	Message string `json:"message" binding:"required"`
}

// @Summary Regenerate the current lesson
// @Description Replaces the lesson text in place, shaped by the user's request. The client confirms with the user first.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Param body body RegenerateRequest true "modification request"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/regenerate [post]
func (c *CourseController) Regenerate(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req RegenerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.Service.RegenerateCurrent(ctx, learnerID, c.subject(ctx), req.Message)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"courseContent": content})
}

// @Summary Enroll in a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	st.EnrollInCourse(ctx, c.subject(ctx))
	util.Success(ctx, gin.H{"enrolledCourses": st.View().EnrolledCourses})
}

// @Summary Unenroll from a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/unenroll [post]
func (c *CourseController) Unenroll(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	st.UnenrollFromCourse(ctx, c.subject(ctx))
	util.Success(ctx, gin.H{"enrolledCourses": st.View().EnrolledCourses})
}

// @Summary List enrolled courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/courses/enrolled [get]
func (c *CourseController) Enrolled(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"enrolledCourses": st.View().EnrolledCourses})
}

// @Summary Get saved progress for a subject
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/progress [get]
func (c *CourseController) Progress(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	prog, ok := st.View().CourseProgress[c.subject(ctx)]
	if !ok {
		util.Success(ctx, model.NewSubjectProgress())
		return
	}
	util.Success(ctx, prog)
}

// @Summary Generated lesson history for a subject
// @Description Every generated and regenerated lesson, in topic order.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/history [get]
func (c *CourseController) History(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.Archive.History(ctx, learnerID, c.subject(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"history": entries})
}

type PositionRequest struct {
	Index *int `json:"index" binding:"required"`
}

// @Summary Jump to a lesson position
// @Description Moves the content index within the already generated lessons.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subject path string true "subject"
// @Param body body PositionRequest true "target index"
// @Success 200 {object} util.Response
// @Router /api/courses/{subject}/position [put]
func (c *CourseController) SetPosition(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req PositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	st.SetCurrentContentIndex(ctx, *req.Index, c.subject(ctx))
	util.Success(ctx, gin.H{"currentIndex": st.View().CurrentContentIndex})
}
