package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feedbackRoute "internship_backend/internals/features/internships/feedback/route"
	versionRoute "internship_backend/internals/features/internships/feedback_versions/route"
	selectionRoute "internship_backend/internals/features/internships/intern_selections/route"
	roundRoute "internship_backend/internals/features/internships/rounds/route"
)

// InternshipUserRoutes mounts under /api/u.
func InternshipUserRoutes(r fiber.Router, db *gorm.DB, submitLimiter fiber.Handler) {
	feedbackRoute.FeedbackUserRoutes(r, db, submitLimiter)
	selectionRoute.InternSelectionUserRoutes(r, db)
}

// InternshipAdminRoutes mounts under /api/a. Each feature checks roles itself
// since coordinators reach the funding endpoint.
func InternshipAdminRoutes(r fiber.Router, db *gorm.DB) {
	roundRoute.RoundAdminRoutes(r, db)
	selectionRoute.InternSelectionAdminRoutes(r, db)
	feedbackRoute.FeedbackAdminRoutes(r, db)
	versionRoute.FeedbackVersionAdminRoutes(r, db)
}
