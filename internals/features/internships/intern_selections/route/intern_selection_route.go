package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"internship_backend/internals/constants"
	selectionController "internship_backend/internals/features/internships/intern_selections/controller"
	authMiddleware "internship_backend/internals/middlewares/auth"
)

// InternSelectionAdminRoutes mounts under /api/a.
func InternSelectionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := selectionController.NewInternSelectionController(db)

	g := r.Group("/intern-selections")
	orgOnly := authMiddleware.OnlyRoles(constants.RoleErrorOrganizer("internships"), constants.OrganizerOnly...)
	funders := authMiddleware.OnlyRoles(constants.RoleErrorFunder("funding"), constants.FundingRoles...)

	g.Post("/", orgOnly, ctl.Create)
	g.Get("/", orgOnly, ctl.List)
	g.Get("/:id", orgOnly, ctl.Get)
	g.Post("/:id/mentors", orgOnly, ctl.AddMentor)
	g.Post("/:id/extend", orgOnly, ctl.Extend)
	g.Post("/:id/terminate", orgOnly, ctl.Terminate)
	g.Post("/:id/fund", funders, ctl.Fund)
	g.Post("/:id/approval/:approval", orgOnly, ctl.Approval)
}

// InternSelectionUserRoutes mounts under /api/u.
func InternSelectionUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := selectionController.NewInternSelectionController(db)

	r.Post("/intern-selections/:id/resign", ctl.Resign)
}
