package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/ZulAmi/proofwork/internal/errors"
	"github.com/labstack/echo/v4"
)

// maxAddressLen caps the subject identifier; addresses are opaque strings but
// unbounded ones only ever show up in abuse traffic.
const maxAddressLen = 128

func (s *Server) handleTrustScore(c echo.Context) error {
	ctx := c.Request().Context()

	address, err := subjectAddress(c)
	if err != nil {
		return err
	}

	forceRefresh := false
	if raw := c.QueryParam("force_refresh"); raw != "" {
		forceRefresh, err = strconv.ParseBool(raw)
		if err != nil {
			return apperrors.ValidationError("force_refresh must be a boolean").WithField("force_refresh", raw)
		}
	}

	score, err := s.app.TrustScore(ctx, address, forceRefresh)
	if err != nil {
		return apperrors.InternalError("failed to compute trust score", err).WithField("address", address)
	}

	if err := c.JSON(http.StatusOK, score); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeReviews(c echo.Context) error {
	ctx := c.Request().Context()

	address, err := subjectAddress(c)
	if err != nil {
		return err
	}

	analysis, err := s.app.AnalyzeReviews(ctx, address)
	if err != nil {
		return apperrors.InternalError("failed to analyze reviews", err).WithField("address", address)
	}

	if err := c.JSON(http.StatusOK, analysis); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func subjectAddress(c echo.Context) (string, error) {
	address := c.Param("address")
	if address == "" {
		return "", apperrors.ValidationError("address is required")
	}
	if len(address) > maxAddressLen {
		return "", apperrors.ValidationError("address is too long").WithField("length", len(address))
	}
	return address, nil
}
