package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

var superClaims = &ports.Claims{UserID: "root", Email: "root@example.com", Role: domain.RoleSuperAdmin}

func TestGroupHandler_CreateAndRename(t *testing.T) {
	stub := &stubGroups{
		createFn: func(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error) {
			return &domain.Group{ID: "g1", Name: name}, nil
		},
		renameFn: func(ctx context.Context, actor domain.Actor, id, name string) (*domain.Group, error) {
			if id != "g1" || name != "Beta" {
				t.Fatalf("unexpected args: %q %q", id, name)
			}
			return &domain.Group{ID: id, Name: name}, nil
		},
	}
	h := NewGroupHandler(stub)

	c, rec := newContext(http.MethodPost, "/groups", `{"name":"Alpha"}`, superClaims)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var g groupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil || g.Name != "Alpha" {
		t.Fatalf("unexpected payload %s (%v)", rec.Body.String(), err)
	}

	c, rec = newContext(http.MethodPatch, "/groups/g1", `{"name":"Beta"}`, superClaims)
	if err := h.Rename(withID(c, "g1")); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("rename: err=%v code=%d", err, rec.Code)
	}
}

func TestGroupHandler_Create_DuplicatePropagates(t *testing.T) {
	stub := &stubGroups{
		createFn: func(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error) {
			return nil, domain.ErrGroupExists
		},
	}
	h := NewGroupHandler(stub)
	c, _ := newContext(http.MethodPost, "/groups", `{"name":"Alpha"}`, superClaims)

	if err := h.Create(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGroupHandler_ListGetDelete(t *testing.T) {
	stub := &stubGroups{
		listFn: func(ctx context.Context, actor domain.Actor) ([]*domain.Group, error) {
			return []*domain.Group{{ID: "g1"}, {ID: "g2"}}, nil
		},
		getFn: func(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error) {
			return nil, domain.ErrGroupNotFound
		},
		deleteFn: func(ctx context.Context, actor domain.Actor, id string) (string, error) {
			return "Group deleted successfully", nil
		},
	}
	h := NewGroupHandler(stub)

	c, rec := newContext(http.MethodGet, "/groups", "", superClaims)
	if err := h.List(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("list: err=%v code=%d", err, rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/groups/missing", "", superClaims)
	if err := h.Get(withID(c, "missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	c, rec = newContext(http.MethodDelete, "/groups/g1", "", superClaims)
	if err := h.Delete(withID(c, "g1")); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("delete: err=%v code=%d", err, rec.Code)
	}
}
