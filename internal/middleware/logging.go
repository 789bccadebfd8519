package middleware

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// RequestLogger logs one line per request to w.
func RequestLogger(w io.Writer) fiber.Handler {
	return logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
		Output: w,
	})
}
