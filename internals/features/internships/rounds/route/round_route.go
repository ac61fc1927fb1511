package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	roundController "internship_backend/internals/features/internships/rounds/controller"
	authMiddleware "internship_backend/internals/middlewares/auth"
)

// RoundAdminRoutes mounts under /api/a.
func RoundAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := roundController.NewRoundController(db)

	g := r.Group("/rounds",
		authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("rounds"), constants.OrganizerOnly...),
	)
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
}
