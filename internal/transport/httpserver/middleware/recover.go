package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vending-content-service/internal/transport/httpserver/dto"
)

// Recover turns a handler panic into a 500 JSON error response instead of
// dropping the connection. The stack is logged here, once, with the request
// ID; the fiber error handler never sees the panic.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Locals("requestid").(string)
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("request_id", requestID),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("stack", string(debug.Stack())),
				)

				err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: "internal server error",
					Code:  "PANIC",
				})
			}
		}()

		return c.Next()
	}
}
