package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/api/handler"
	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

func TestAuthorize_ManageGroups(t *testing.T) {
	for _, role := range domain.Roles() {
		t.Run(string(role), func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(handler.ContextKeyClaims, &ports.Claims{UserID: "u1", Role: role, GroupID: "g1"})

			called := false
			err := Authorize(policy.ActionManageGroups)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})(c)

			want := role == domain.RoleSuperAdmin
			if called != want {
				t.Fatalf("role %s: called=%v want %v", role, called, want)
			}
			if !want && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("role %s: expected forbidden, got %v", role, err)
			}
		})
	}
}

func TestAuthorize_WithoutClaims(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := Authorize(policy.ActionManageGroups)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
