// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helper "internship_backend/internals/helpers"
	"internship_backend/internals/helpers/applog"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // read the access_token cookie when there is no Bearer header
}

// AuthJWT verifies an HMAC-signed token issued by the account service and
// fills user_id, username and roles into locals.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw, err := extractBearerToken(c, o.AllowCookieFallback)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			applog.Debug().Add(applog.Component("auth")).Add(applog.Err(err)).Msg("token rejected")
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token claims")
		}

		userID := firstClaim(claims, "id", "sub", "user_id")
		if _, err := uuid.Parse(userID); err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid or missing user id")
		}

		c.Locals(helper.LocRawToken, raw)
		c.Locals(helper.LocUserID, userID)
		c.Locals(helper.LocUsername, firstClaim(claims, "username", "user_name"))
		c.Locals(helper.LocRoles, rolesOf(claims))

		return c.Next()
	}
}
