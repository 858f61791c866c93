package errorutil

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the body shape of every response.
type Envelope struct {
	OK      bool           `json:"ok"`
	Code    int            `json:"code"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// OK writes data with status 200.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusOK).JSON(Envelope{OK: true, Code: http.StatusOK, Data: data})
}

// Fail writes a DomainError.
func Fail(c *fiber.Ctx, err *DomainError) error {
	return c.Status(err.HTTPStatus).JSON(Envelope{
		OK:      false,
		Code:    err.HTTPStatus,
		Error:   err.Code,
		Message: err.Message,
		Details: err.Details,
	})
}
