package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/example/harvest/internal/utils"
)

// RequestLogger records one access log line and the HTTP metrics per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		duration := time.Since(start)
		statusLabel := strconv.Itoa(status)

		utils.HTTPRequestDuration.WithLabelValues(c.Method(), route, statusLabel).Observe(duration.Seconds())
		utils.HTTPRequestsTotal.WithLabelValues(c.Method(), route, statusLabel).Inc()

		zap.L().Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}
