package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"techscreen-backend/lib/smtp"
)

// ErrNotify mails server errors to the operator address.
func ErrNotify(mailer smtp.Provider, to string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if mailer == nil || to == "" || !mailer.IsConfigured() {
			return err
		}
		statusCode := c.Response().StatusCode()
		if statusCode < fiber.StatusInternalServerError {
			return err
		}

		body := string(c.Response().Body())
		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
			log.WithError(unmErr).Debug("error unmarshalling response body in middleware")
		}
		msg := data.Message
		if msg == "" {
			msg = body
		}
		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}

		go func() {
			subject := fmt.Sprintf("techscreen: %d on %s %s", statusCode, method, path)
			if sendErr := mailer.SendEMail(to, subject, msg); sendErr != nil {
				log.WithError(sendErr).Warn("error sending error notification")
			}
		}()
		return err
	}
}
