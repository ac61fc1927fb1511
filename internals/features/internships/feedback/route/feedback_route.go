package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	feedbackController "internship_backend/internals/features/internships/feedback/controller"
	authMiddleware "internship_backend/internals/middlewares/auth"
)

// FeedbackUserRoutes mounts under /api/u. submitLimiter guards only the submission endpoints.
func FeedbackUserRoutes(r fiber.Router, db *gorm.DB, submitLimiter fiber.Handler) {
	ctl := feedbackController.NewFeedbackController(db)

	r.Get("/dashboard", ctl.Dashboard)

	g := r.Group("/feedback", submitLimiter)
	for _, st := range constants.Stages {
		g.Post("/"+string(st)+"/mentor/:username", ctl.SubmitMentor(st))
		g.Post("/"+string(st)+"/intern", ctl.SubmitIntern(st))
	}
}

// FeedbackAdminRoutes mounts under /api/a.
func FeedbackAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feedbackController.NewFeedbackAdminController(db)

	g := r.Group("/feedback",
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("feedback records"), constants.OrganizerOnly...),
	)
	g.Get("/:stage/:role/:selection_id", ctl.Detail)
	g.Post("/:stage/:role/:selection_id/reopen", ctl.Reopen)
	g.Get("/:stage/:role/:selection_id/versions", ctl.Versions)
}
