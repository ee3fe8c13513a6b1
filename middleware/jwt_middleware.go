package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	apimodels "techscreen-backend/models/api"
)

// AuthorizationRequired rejects every request when secret is empty: an
// HS256 token signed with an empty key would otherwise verify.
func AuthorizationRequired(secret string) fiber.Handler {
	if secret == "" {
		return func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("unauthorized: jwt secret is not configured"))
		}
	}
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("unauthorized: " + err.Error()))
		},
	})
}
