package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"Inventaris/Models"
)

// RequestLogger logs one line per request: method, path, status, latency,
// client ip and, when authenticated, the acting user.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)

		var userStr string
		if user := c.Locals("user"); user != nil {
			if u, ok := user.(Models.User); ok {
				userStr = fmt.Sprintf(" user:%v(%s)", u.ID, u.Username)
			}
		}

		log.Printf(
			"%s %s %d %s %s%s",
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			latency,
			c.IP(),
			userStr,
		)

		return err
	}
}
