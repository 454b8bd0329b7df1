package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes backend rejections through with the backend's message.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusServiceUnavailable {
			c.Response().Header().Set("Retry-After", "1")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusBadRequest, unwrapMessage(err)
	case errors.Is(err, domain.ErrInvalidDetails):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrInvalidOrderStatus):
		return http.StatusUnprocessableEntity, "invalid order status"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrSessionUnresolved):
		return http.StatusServiceUnavailable, "session unresolved"
	case errors.Is(err, domain.ErrCartEmpty):
		return http.StatusConflict, "cart is empty"
	case errors.Is(err, domain.ErrIncompleteDetails):
		return http.StatusConflict, "delivery details are incomplete"
	case errors.Is(err, domain.ErrKeyNotFound):
		return http.StatusNotFound, "not found"
	}

	var re *domain.RemoteError
	if errors.As(err, &re) {
		if re.Status >= 400 && re.Status < 500 {
			msg := re.Message
			if msg == "" {
				msg = http.StatusText(re.Status)
			}
			return re.Status, msg
		}
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend error")
		return http.StatusBadGateway, "backend error"
	}

	var ue *url.Error
	var ne net.Error
	if errors.As(err, &ue) || errors.As(err, &ne) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unreachable")
		return http.StatusBadGateway, "backend unreachable"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// unwrapMessage returns the innermost error text, dropping operation prefixes.
func unwrapMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
