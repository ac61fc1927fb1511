package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	"internship_backend/internals/constants"
	selectionDTO "internship_backend/internals/features/internships/intern_selections/dto"
	selectionModel "internship_backend/internals/features/internships/intern_selections/model"
	selectionService "internship_backend/internals/features/internships/intern_selections/service"
	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
)

type InternSelectionController struct {
	Service   *selectionService.InternSelectionService
	Validator *validator.Validate
}

func NewInternSelectionController(db *gorm.DB) *InternSelectionController {
	return &InternSelectionController{
		Service:   selectionService.NewInternSelectionService(db),
		Validator: helper.NewValidator(),
	}
}

// POST /api/a/intern-selections
func (ctl *InternSelectionController) Create(c *fiber.Ctx) error {
	var req selectionDTO.CreateInternSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.InternUsername = strings.TrimSpace(req.InternUsername)
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := selectionService.CreateInput{
		RoundID:        uuid.MustParse(req.RoundID),
		InternUserID:   uuid.MustParse(req.InternUserID),
		InternUsername: req.InternUsername,
		InternName:     strings.TrimSpace(req.InternName),
		ProjectName:    strings.TrimSpace(req.ProjectName),
	}
	for _, mt := range req.Mentors {
		in.Mentors = append(in.Mentors, selectionService.MentorInput{
			UserID: uuid.MustParse(mt.UserID),
			Name:   strings.TrimSpace(mt.Name),
		})
	}

	m, err := ctl.Service.Create(c.Context(), in)
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonCreated(c, "Internship created", selectionDTO.FromModel(*m))
}

// GET /api/a/intern-selections?round_id=&active=
func (ctl *InternSelectionController) List(c *fiber.Ctx) error {
	var f selectionService.ListFilter
	if s := strings.TrimSpace(c.Query("round_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "round_id is not a valid UUID")
		}
		f.RoundID = &id
	}
	if s := strings.TrimSpace(c.Query("active")); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "active must be a boolean")
		}
		f.Active = &b
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.Context(), f, p.Offset, p.Limit)
	if err != nil {
		return selectionError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", selectionDTO.FromModels(rows), &pg)
}

// GET /api/a/intern-selections/:id
func (ctl *InternSelectionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Service.Get(c.Context(), id)
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonOK(c, "ok", selectionDTO.FromModel(*m))
}

// POST /api/a/intern-selections/:id/mentors
func (ctl *InternSelectionController) AddMentor(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req selectionDTO.AddMentorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Service.AddMentor(c.Context(), id, selectionService.MentorInput{
		UserID: uuid.MustParse(req.UserID),
		Name:   strings.TrimSpace(req.Name),
	})
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonUpdated(c, "Mentor added", selectionDTO.FromModel(*m))
}

// POST /api/a/intern-selections/:id/extend
func (ctl *InternSelectionController) Extend(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req selectionDTO.ExtendRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Stage = strings.ToLower(strings.TrimSpace(req.Stage))
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	stage, err := constants.ParseStage(req.Stage)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Service.Extend(c.Context(), id, stage, req.Weeks)
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonUpdated(c, "Internship extended", fiber.Map{
		"internship":      selectionDTO.FromModel(*res.Selection),
		"new_date":        res.NewDate,
		"feedback_reopen": res.Reopened,
	})
}

// POST /api/a/intern-selections/:id/terminate
func (ctl *InternSelectionController) Terminate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.Service.Terminate(c.Context(), id)
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonUpdated(c, "Internship terminated", selectionDTO.FromModel(*m))
}

// POST /api/a/intern-selections/:id/fund
func (ctl *InternSelectionController) Fund(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req selectionDTO.FundRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Service.Fund(c.Context(), id, selectionModel.FundingSource(req.FundingSource))
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonUpdated(c, "Funding source recorded", selectionDTO.FromModel(*m))
}

// POST /api/a/intern-selections/:id/approval/:approval (Approved|Rejected)
func (ctl *InternSelectionController) Approval(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var approved bool
	switch strings.ToLower(c.Params("approval")) {
	case "approved":
		approved = true
	case "rejected":
		approved = false
	default:
		return helper.JsonError(c, fiber.StatusNotFound, "approval must be Approved or Rejected")
	}
	m, err := ctl.Service.SetApproval(c.Context(), id, approved)
	if err != nil {
		return selectionError(c, err)
	}
	return helper.JsonUpdated(c, "Approval recorded", selectionDTO.FromModel(*m))
}

// POST /api/u/intern-selections/:id/resign
func (ctl *InternSelectionController) Resign(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Service.Resign(c.Context(), id, userID); err != nil {
		return selectionError(c, err)
	}
	return c.Redirect(configs.DashboardPath, fiber.StatusFound)
}

func selectionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, selectionService.ErrSelectionNotFound),
		errors.Is(err, selectionService.ErrRoundNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, selectionService.ErrNotFunded),
		errors.Is(err, selectionService.ErrNotMentor):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, selectionService.ErrMentorExists),
		errors.Is(err, selectionService.ErrLastMentor):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, selectionService.ErrInvalidWeeks):
		return helper.JsonValidationError(c, map[string][]string{"weeks": {err.Error()}})
	case errors.Is(err, selectionService.ErrInvalidFunding):
		return helper.JsonValidationError(c, map[string][]string{"funding_source": {err.Error()}})
	}

	applog.Error().
		Add(applog.Component("intern_selections")).
		Add(applog.Str("path", c.Path())).
		Add(applog.Err(err)).
		Msg("unexpected error")
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process internship")
}
