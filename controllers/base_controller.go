package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"techscreen-backend/models"
	apimodels "techscreen-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// StatusForKind maps a generation failure kind to the HTTP status reported to callers.
func StatusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrKindNotFound:
		return fiber.StatusNotFound
	case models.ErrKindValidationFailed:
		return fiber.StatusUnprocessableEntity
	case models.ErrKindProviderExhausted:
		return fiber.StatusServiceUnavailable
	case models.ErrKindProviderFatal:
		return fiber.StatusBadGateway
	case models.ErrKindCanceled:
		return fiber.StatusRequestTimeout
	}
	return fiber.StatusInternalServerError
}

// SendError writes err using the API envelope. Generation failures keep their kind,
// a missing record is a 404, anything else is logged and reported as a 500.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	var genErr *models.GenerationError
	if errors.As(err, &genErr) {
		return ctx.Status(StatusForKind(genErr.Kind)).
			JSON(apimodels.NewErrorWithKind(genErr.Error(), string(genErr.Kind)))
	}
	if errors.Is(err, models.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).
			JSON(apimodels.NewErrorWithKind(message+": not found", string(models.ErrKindNotFound)))
	}
	logger.WithError(err).Error(message)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
}
