package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/api/handler"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

// Authorize rejects requests whose caller may not perform action at all.
// Only actions that do not depend on a target resource belong here; the
// services re-check every decision against the loaded resource.
func Authorize(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(handler.ContextKeyClaims).(*ports.Claims)
			if !ok || claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if d := policy.Decide(action, claims.Actor(), policy.Target{}); !d.Allowed {
				return d.Err
			}
			return next(c)
		}
	}
}
