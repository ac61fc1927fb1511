package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"internship_backend/internals/configs"
	"internship_backend/internals/helpers/dbtime"
	"internship_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the stack shared by every route.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(dbtime.UseProgramLocation(configs.ProgramTimezone))
	app.Use("/api", GlobalRateLimiter())
}
