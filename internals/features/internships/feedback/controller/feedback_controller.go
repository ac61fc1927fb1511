package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	"internship_backend/internals/constants"
	feedbackDTO "internship_backend/internals/features/internships/feedback/dto"
	feedbackModel "internship_backend/internals/features/internships/feedback/model"
	feedbackService "internship_backend/internals/features/internships/feedback/service"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
)

type FeedbackController struct {
	Service   *feedbackService.FeedbackService
	Validator *validator.Validate
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{
		Service:   feedbackService.NewFeedbackService(db),
		Validator: helper.NewValidator(),
	}
}

// POST /api/u/feedback/:stage/mentor/:username
func (ctl *FeedbackController) SubmitMentor(stage constants.Stage) fiber.Handler {
	kind := feedbackModel.Kind{Stage: stage, Role: constants.FeedbackByMentor}
	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		sel, err := ctl.Service.FindMentorSelection(c.Context(), c.Params("username"), userID)
		if err != nil {
			return respondError(c, err)
		}
		if err := ctl.Service.Precheck(c.Context(), kind, sel); err != nil {
			return respondError(c, err)
		}
		return ctl.submit(c, kind, sel.InternSelectionID, userID)
	}
}

// POST /api/u/feedback/:stage/intern
func (ctl *FeedbackController) SubmitIntern(stage constants.Stage) fiber.Handler {
	kind := feedbackModel.Kind{Stage: stage, Role: constants.FeedbackByIntern}
	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		sel, err := ctl.Service.FindInternSelection(c.Context(), userID)
		if err != nil {
			return respondError(c, err)
		}
		if err := ctl.Service.Precheck(c.Context(), kind, sel); err != nil {
			return respondError(c, err)
		}
		return ctl.submit(c, kind, sel.InternSelectionID, userID)
	}
}

func (ctl *FeedbackController) submit(c *fiber.Ctx, kind feedbackModel.Kind, selectionID, userID uuid.UUID) error {
	form, err := feedbackDTO.NewForm(kind)
	if err != nil {
		return respondError(c, feedbackService.ErrInvalidStage)
	}
	if err := c.BodyParser(form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(form); err != nil {
		return helper.ValidationError(c, err)
	}

	if _, err := ctl.Service.Submit(c.Context(), feedbackService.SubmitInput{
		Kind:         kind,
		SelectionID:  selectionID,
		AuthorUserID: userID,
		Form:         form,
	}); err != nil {
		return respondError(c, err)
	}
	return c.Redirect(configs.DashboardPath, fiber.StatusFound)
}

// GET /api/u/dashboard
func (ctl *FeedbackController) Dashboard(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ctas, err := ctl.Service.Dashboard(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return helper.JsonOK(c, "ok", ctas)
}

// respondError maps service errors to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, feedbackService.ErrWindowNotOpen),
		errors.Is(err, feedbackService.ErrAlreadyFinalized),
		errors.Is(err, feedbackService.ErrNotMentor):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, feedbackService.ErrSelectionNotFound),
		errors.Is(err, feedbackService.ErrInvalidStage),
		errors.Is(err, feedbackService.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	applog.Error().
		Add(applog.Component("feedback")).
		Add(applog.Str("path", c.Path())).
		Add(applog.Str("username", helper.GetUsername(c))).
		Add(applog.Err(err)).
		Msg("unexpected error")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
