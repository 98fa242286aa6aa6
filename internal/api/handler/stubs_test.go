package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

type stubCredentials struct {
	inviteFn      func(ctx context.Context, actor domain.Actor, input ports.InviteInput) (string, error)
	verifyFn      func(ctx context.Context, email, code string) (string, error)
	setPasswordFn func(ctx context.Context, email, password string) (string, error)
	loginFn       func(ctx context.Context, email, password string) (string, error)
	refreshFn     func(ctx context.Context, claims ports.Claims) (string, *domain.User, error)
}

func (s *stubCredentials) Invite(ctx context.Context, actor domain.Actor, input ports.InviteInput) (string, error) {
	return s.inviteFn(ctx, actor, input)
}

func (s *stubCredentials) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	return s.verifyFn(ctx, email, code)
}

func (s *stubCredentials) SetPassword(ctx context.Context, email, password string) (string, error) {
	return s.setPasswordFn(ctx, email, password)
}

func (s *stubCredentials) LoginWithPassword(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubCredentials) Refresh(ctx context.Context, claims ports.Claims) (string, *domain.User, error) {
	return s.refreshFn(ctx, claims)
}

type stubUsers struct {
	inviteFn func(ctx context.Context, actor domain.Actor, input ports.InviteInput) (string, error)
	listFn   func(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) (string, error)
}

func (s *stubUsers) Invite(ctx context.Context, actor domain.Actor, input ports.InviteInput) (string, error) {
	return s.inviteFn(ctx, actor, input)
}

func (s *stubUsers) ListVisible(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUsers) GetVisible(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubUsers) DeleteByRole(ctx context.Context, actor domain.Actor, id string) (string, error) {
	return s.deleteFn(ctx, actor, id)
}

type stubTransactions struct {
	createFn func(ctx context.Context, actor domain.Actor, title string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, actor domain.Actor) ([]*domain.Transaction, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error)
	updateFn func(ctx context.Context, actor domain.Actor, id, title string) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) (string, error)
}

func (s *stubTransactions) Create(ctx context.Context, actor domain.Actor, title string) (*domain.Transaction, error) {
	return s.createFn(ctx, actor, title)
}

func (s *stubTransactions) List(ctx context.Context, actor domain.Actor) ([]*domain.Transaction, error) {
	return s.listFn(ctx, actor)
}

func (s *stubTransactions) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTransactions) Update(ctx context.Context, actor domain.Actor, id, title string) (*domain.Transaction, error) {
	return s.updateFn(ctx, actor, id, title)
}

func (s *stubTransactions) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	return s.deleteFn(ctx, actor, id)
}

type stubGroups struct {
	createFn func(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error)
	listFn   func(ctx context.Context, actor domain.Actor) ([]*domain.Group, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error)
	renameFn func(ctx context.Context, actor domain.Actor, id, name string) (*domain.Group, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) (string, error)
}

func (s *stubGroups) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error) {
	return s.createFn(ctx, actor, name)
}

func (s *stubGroups) List(ctx context.Context, actor domain.Actor) ([]*domain.Group, error) {
	return s.listFn(ctx, actor)
}

func (s *stubGroups) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubGroups) Rename(ctx context.Context, actor domain.Actor, id, name string) (*domain.Group, error) {
	return s.renameFn(ctx, actor, id, name)
}

func (s *stubGroups) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	return s.deleteFn(ctx, actor, id)
}

var (
	adminClaims = &ports.Claims{UserID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin, GroupID: "g1"}
	userClaims  = &ports.Claims{UserID: "user-1", Email: "user@example.com", Role: domain.RoleUser, GroupID: "g1"}
)

// newContext builds an Echo context for a direct handler call. A non-nil
// claims is injected the way the Auth middleware would.
func newContext(method, target, body string, claims *ports.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(ContextKeyClaims, claims)
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// httpStatus extracts the status code carried by an *echo.HTTPError.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
