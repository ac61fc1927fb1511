package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	feedbackService "internship_backend/internals/features/internships/feedback/service"
	versionController "internship_backend/internals/features/internships/feedback_versions/controller"
	helper "internship_backend/internals/helpers"
)

type FeedbackAdminController struct {
	Service    *feedbackService.FeedbackService
	VersionCtl *versionController.FeedbackVersionController
}

func NewFeedbackAdminController(db *gorm.DB) *FeedbackAdminController {
	return &FeedbackAdminController{
		Service:    feedbackService.NewFeedbackService(db),
		VersionCtl: versionController.NewFeedbackVersionController(db),
	}
}

func kindParam(c *fiber.Ctx) (feedbackModel.Kind, error) {
	kind, err := feedbackModel.ParseKind(c.Params("stage"), c.Params("role"))
	if err != nil {
		return kind, feedbackService.ErrInvalidStage
	}
	return kind, nil
}

// GET /api/a/feedback/:stage/:role/:selection_id
func (ctl *FeedbackAdminController) Detail(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	selectionID, err := helper.ParseUUIDParam(c, "selection_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := ctl.Service.Get(c.Context(), kind, selectionID)
	if err != nil {
		return respondError(c, err)
	}
	return helper.JsonOK(c, kind.String(), rec)
}

// POST /api/a/feedback/:stage/:role/:selection_id/reopen
func (ctl *FeedbackAdminController) Reopen(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	selectionID, err := helper.ParseUUIDParam(c, "selection_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := ctl.Service.Reopen(c.Context(), kind, selectionID)
	if err != nil {
		return respondError(c, err)
	}
	return helper.JsonUpdated(c, "Feedback reopened for editing", rec)
}

// GET /api/a/feedback/:stage/:role/:selection_id/versions
func (ctl *FeedbackAdminController) Versions(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	selectionID, err := helper.ParseUUIDParam(c, "selection_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rec, err := ctl.Service.Get(c.Context(), kind, selectionID)
	if err != nil {
		return respondError(c, err)
	}
	return ctl.VersionCtl.RespondList(c, kind.String(), rec.Base().ID)
}
