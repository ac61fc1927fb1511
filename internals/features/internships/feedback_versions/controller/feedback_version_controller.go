package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	versionDTO "internship_backend/internals/features/internships/feedback_versions/dto"
	versionService "internship_backend/internals/features/internships/feedback_versions/service"
	helper "internship_backend/internals/helpers"
)

type FeedbackVersionController struct {
	Service *versionService.FeedbackVersionService
}

func NewFeedbackVersionController(db *gorm.DB) *FeedbackVersionController {
	return &FeedbackVersionController{Service: versionService.NewFeedbackVersionService(db)}
}

// GET /api/a/feedback-versions/:record_type/:record_id
func (ctl *FeedbackVersionController) ListByRecord(c *fiber.Ctx) error {
	recordType := strings.TrimSpace(c.Params("record_type"))
	if recordType == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "record_type is required")
	}
	recordID, err := helper.ParseUUIDParam(c, "record_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctl.RespondList(c, recordType, recordID)
}

// RespondList writes one page of versions for a record. Shared with the feedback admin routes.
func (ctl *FeedbackVersionController) RespondList(c *fiber.Ctx, recordType string, recordID uuid.UUID) error {
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.ListForRecord(recordType, recordID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load versions")
	}

	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", versionDTO.FromModels(rows), &pg)
}
