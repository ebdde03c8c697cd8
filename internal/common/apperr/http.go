package apperr

import "github.com/gofiber/fiber/v2"

var statusByKind = map[Kind]int{
	KindNotFound:     fiber.StatusNotFound,
	KindValidation:   fiber.StatusBadRequest,
	KindConflict:     fiber.StatusConflict,
	KindForbidden:    fiber.StatusForbidden,
	KindUnauthorized: fiber.StatusUnauthorized,
	KindInternal:     fiber.StatusInternalServerError,
}

// Respond writes the error to the Fiber context with the matching status code.
// Used by every controller instead of formatting raw errors into the body.
func Respond(c *fiber.Ctx, err error) error {
	status, ok := statusByKind[KindOf(err)]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"error": MessageOf(err),
	})
}
