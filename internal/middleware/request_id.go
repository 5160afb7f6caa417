package middleware

import (
	"pdf-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// LocalRequestID is the c.Locals key holding the request ID.
const LocalRequestID = "request_id"

// RequestID tags each request with a ULID, or keeps the caller's
// X-Request-ID, and echoes it in the response header.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  util.NewULID,
		ContextKey: LocalRequestID,
	})
}

// GetRequestID returns the request ID stored by RequestID, or "".
func GetRequestID(c *fiber.Ctx) string {
	rid, _ := c.Locals(LocalRequestID).(string)
	return rid
}
