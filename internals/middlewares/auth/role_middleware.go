package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
)

// OnlyRoles lets the request through when the caller holds one of roles.
// Must run after AuthJWT.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		if c.Locals(helper.LocRoles) == nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if helper.HasAnyRole(c, roles...) {
			return c.Next()
		}
		applog.Debug().
			Add(applog.Component("auth")).
			Add(applog.Str("path", c.Path())).
			Msg("role check failed")
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
