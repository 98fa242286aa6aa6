package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	ContextKeyClaims = "claims"
)

// ctxClaims extracts the verified session claims injected by the Auth
// middleware. A missing or malformed value means the route was mounted
// without authentication and is rejected with 401.
func ctxClaims(c echo.Context) (ports.Claims, error) {
	claims, ok := c.Get(ContextKeyClaims).(*ports.Claims)
	if !ok || claims == nil || claims.UserID == "" || !claims.Role.Valid() {
		return ports.Claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return *claims, nil
}
