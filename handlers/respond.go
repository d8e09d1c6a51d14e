package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"competition-service/apperr"
)

// envelope is the response shape every endpoint returns.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(envelope{Success: true, Message: message, Data: data})
}

func respondCreated(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Message: message, Data: data})
}

// respondError maps a domain failure kind to a transport status. The
// message is always the stable failure code — clients branch on it —
// and untyped errors collapse to a generic 500 so nothing internal
// leaks.
func respondError(c *fiber.Ctx, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Printf("❌ [HTTP] unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(envelope{
			Success: false,
			Message: "internal error",
		})
	}

	status := fiber.StatusInternalServerError
	switch e.Kind {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindInvalid:
		status = fiber.StatusBadRequest
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindUnavailable:
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(envelope{Success: false, Message: e.Code})
}
