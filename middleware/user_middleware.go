package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "techscreen-backend/lib/utils/auth-utils"
	"techscreen-backend/models"
	apimodels "techscreen-backend/models/api"
)

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not permitted"))
		}
		return ctx.Next()
	}
}

// GetUserID returns the token subject, models.SystemUser when absent.
func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	return models.SystemUser
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, ok := claims["role"].(string); ok && role != "" {
		return models.UserRole(role)
	}
	return ""
}
