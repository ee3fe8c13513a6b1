package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"techscreen-backend/models"
)

type TokenConfig struct {
	Secret string
	Expire time.Duration
}

func GetToken(cfg TokenConfig, userID, name string, role models.UserRole) (tokenString string, err error) {
	if cfg.Secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"name":  name,
		"sub":   userID,
		"admin": role.IsAdmin(),
		"role":  string(role),
		"exp":   now.Add(cfg.Expire).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
