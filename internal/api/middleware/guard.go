package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

// ContextKeyUser is where Guard stores the signed-in *domain.User.
const ContextKeyUser = "user"

// SessionSource yields the session a request is checked against.
type SessionSource interface {
	Snapshot() domain.Session
}

// Guard applies the route guard policy for routes of the given kind. A
// deferred decision answers 503 with Retry-After so the view can show a
// loading state and retry.
func Guard(kind domain.RouteKind, sessions SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			switch domain.CanAccess(kind, s) {
			case domain.Allow:
				if s.User != nil {
					c.Set(ContextKeyUser, s.User)
				}
				return next(c)
			case domain.Defer:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session unresolved"})
			}
			if !s.Authenticated() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "login required"})
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
