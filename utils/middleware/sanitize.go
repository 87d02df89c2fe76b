package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/willowgate/school-api/utils/validation"
)

// SanitizeBody strips HTML markup and script-triggering substrings from
// every string field of every incoming JSON body, before any
// route-specific validation runs. Non-JSON and unparseable bodies pass
// through untouched; the route's own body parsing reports those.
func SanitizeBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return c.Next()
		}

		contentType := c.Get("Content-Type")
		if !strings.Contains(contentType, fiber.MIMEApplicationJSON) {
			return c.Next()
		}

		var decoded interface{}
		if err := json.Unmarshal(c.Body(), &decoded); err != nil {
			return c.Next()
		}

		sanitized, err := json.Marshal(validation.SanitizeValue(decoded))
		if err != nil {
			return c.Next()
		}

		c.Request().SetBody(sanitized)
		return c.Next()
	}
}
