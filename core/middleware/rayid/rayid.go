package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the ray ID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key under which the ray ID is stored.
const LocalsKey = "ray_id"

// New creates a middleware that assigns a unique ray ID to every request.
// An incoming X-Ray-ID header is honored so that IDs survive proxies;
// otherwise a fresh UUID is generated. The ID is stored in locals for the
// logger and echoed back in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
