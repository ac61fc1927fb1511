package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"internship_backend/internals/helpers/applog"
)

// RecoveryMiddleware turns panics into 500s and logs them.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			applog.Error().
				Add(applog.Component("http")).
				Add(applog.Str("path", c.Path())).
				Add(applog.Str("panic", fmt.Sprint(e))).
				Msg("recovered from panic")
		},
	})
}
