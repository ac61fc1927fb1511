package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	roundDTO "internship_backend/internals/features/internships/rounds/dto"
	roundService "internship_backend/internals/features/internships/rounds/service"
	helper "internship_backend/internals/helpers"
)

type RoundController struct {
	Service   *roundService.RoundService
	Validator *validator.Validate
}

func NewRoundController(db *gorm.DB) *RoundController {
	return &RoundController{
		Service:   roundService.NewRoundService(db),
		Validator: helper.NewValidator(),
	}
}

// POST /api/a/rounds
func (ctl *RoundController) Create(c *fiber.Ctx) error {
	var req roundDTO.CreateRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.RoundName = strings.TrimSpace(req.RoundName)
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.Create(c.Context(), &m); err != nil {
		return roundError(c, err)
	}
	return helper.JsonCreated(c, "Round created", roundDTO.FromModel(m))
}

// GET /api/a/rounds
func (ctl *RoundController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.List(c.Context(), p.Offset, p.Limit)
	if err != nil {
		return roundError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", roundDTO.FromModels(rows), &pg)
}

// GET /api/a/rounds/:id (id or slug)
func (ctl *RoundController) Get(c *fiber.Ctx) error {
	m, err := ctl.Service.Get(c.Context(), strings.TrimSpace(c.Params("id")))
	if err != nil {
		return roundError(c, err)
	}
	return helper.JsonOK(c, "ok", roundDTO.FromModel(*m))
}

// PATCH /api/a/rounds/:id
func (ctl *RoundController) Update(c *fiber.Ctx) error {
	var req roundDTO.UpdateRoundRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := ctl.Service.Get(c.Context(), strings.TrimSpace(c.Params("id")))
	if err != nil {
		return roundError(c, err)
	}
	if err := req.ApplyTo(m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.Save(c.Context(), m); err != nil {
		return roundError(c, err)
	}
	return helper.JsonUpdated(c, "Round updated", roundDTO.FromModel(*m))
}

func roundError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, roundService.ErrRoundNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, roundService.ErrMilestonesOutOfOrder):
		return helper.JsonValidationError(c, map[string][]string{"round": {err.Error()}})
	case helper.IsUniqueViolation(err):
		return helper.JsonError(c, fiber.StatusConflict, "Round slug already exists")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process round")
}
