package controller

import (
	"ai_course_backend/internal/model"
	"ai_course_backend/internal/store"
	"ai_course_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Stores *store.Manager
}

func NewProfileController(stores *store.Manager) *ProfileController {
	return &ProfileController{Stores: stores}
}

// @Summary Get the learner profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
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

	profile := st.View().UserProfile
	if profile == nil {
		// First contact: materialize the guest profile.
		guest := model.NewGuestProfile(learnerID)
		st.SetUserProfile(ctx, *guest)
		profile = guest
	}

	util.Success(ctx, profile)
}

// @Summary Update the learner profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ProfileUpdate true "profile fields"
// @Success 200 {object} util.Response
// @Router /api/profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req model.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	st.UpdateUserProfile(ctx, req)
	util.Success(ctx, st.View().UserProfile)
}

// @Summary Update learning preferences
// @Description Merge-updates preferences; omitted fields are unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.PreferencesUpdate true "preference fields"
// @Success 200 {object} util.Response
// @Router /api/profile/preferences [put]
func (c *ProfileController) UpdatePreferences(ctx *gin.Context) {
	learnerID := util.GetLearnerFromContext(ctx)
	if learnerID == "" {
		util.Unauthorized(ctx)
		return
	}

	var req model.PreferencesUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	st, err := c.Stores.Get(ctx, learnerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	st.UpdateLearningPreferences(ctx, req)
	util.Success(ctx, st.View().UserProfile)
}
