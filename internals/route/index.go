package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"internship_backend/internals/configs"
	"internship_backend/internals/helpers/applog"
	"internship_backend/internals/middlewares"
	authMiddleware "internship_backend/internals/middlewares/auth"
	routeDetails "internship_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mounts every route. rl may be nil, in which case submissions are
// limited per instance.
func SetupRoutes(app *fiber.App, db *gorm.DB, rl *middlewares.RedisLimiter) {
	startTime = time.Now()

	BaseRoutes(app, db)

	auth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	applog.Info().Add(applog.Component("routes")).Msg("mounting /api/u")
	user := app.Group("/api/u", auth)
	submitLimiter := middlewares.SubmissionRateLimiter(rl, configs.FeedbackSubmitMax, configs.FeedbackSubmitWindow)
	routeDetails.InternshipUserRoutes(user, db, submitLimiter)

	applog.Info().Add(applog.Component("routes")).Msg("mounting /api/a")
	admin := app.Group("/api/a", auth)
	routeDetails.InternshipAdminRoutes(admin, db)
}
