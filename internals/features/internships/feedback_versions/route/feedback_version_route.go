package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	versionController "internship_backend/internals/features/internships/feedback_versions/controller"
	authMiddleware "internship_backend/internals/middlewares/auth"
)

// FeedbackVersionAdminRoutes mounts under /api/a. The trail is read-only.
func FeedbackVersionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := versionController.NewFeedbackVersionController(db)

	g := r.Group("/feedback-versions",
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("feedback versions"), constants.OrganizerOnly...),
	)
	g.Get("/:record_type/:record_id", ctl.ListByRecord)
}
