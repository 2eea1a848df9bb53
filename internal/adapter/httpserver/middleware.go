package httpserver

import (
	"crypto/subtle"

	apperrors "github.com/ZulAmi/proofwork/internal/errors"
	"github.com/ZulAmi/proofwork/internal/platform/correlation"
	"github.com/labstack/echo/v4"
)

const apiKeyHeader = "X-API-Key"

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// requireAPIKey rejects requests without the configured API key. A blank
// configured key disables auth entirely.
func (s *Server) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.config.APIKey == "" {
			return next(c)
		}

		provided := c.Request().Header.Get(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.config.APIKey)) != 1 {
			return apperrors.UnauthorizedError("invalid or missing API key")
		}
		return next(c)
	}
}
