package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

type stubCredentials struct {
	invited []ports.InviteInput
	ports.CredentialService
}

func (s *stubCredentials) Invite(_ context.Context, _ domain.Actor, input ports.InviteInput) (string, error) {
	s.invited = append(s.invited, input)
	return "OTP link sent to " + input.Email, nil
}

func userDirectory() *stubUserRepo {
	return newStubUserRepo(
		&domain.User{ID: "admin-g1", Email: "admin1@example.com", Role: domain.RoleAdmin, GroupID: "g1", State: domain.StateActive},
		&domain.User{ID: "power-g1", Email: "power1@example.com", Role: domain.RolePowerUser, GroupID: "g1", State: domain.StateActive},
		&domain.User{ID: "user-g1", Email: "user1@example.com", Role: domain.RoleUser, GroupID: "g1", State: domain.StateActive},
		&domain.User{ID: "user-g2", Email: "user2@example.com", Role: domain.RoleUser, GroupID: "g2", State: domain.StateActive},
		&domain.User{ID: "support", Email: "help@example.com", Role: domain.RoleSupport, State: domain.StateActive},
	)
}

func ids(users []*domain.User) map[string]bool {
	out := make(map[string]bool, len(users))
	for _, u := range users {
		out[u.ID] = true
	}
	return out
}

func TestUserService_Invite_Delegates(t *testing.T) {
	creds := &stubCredentials{}
	svc := NewUserService(userDirectory(), creds, zerolog.Nop())

	msg, err := svc.Invite(context.Background(), adminG1, ports.InviteInput{Email: "n@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Invite returned error: %v", err)
	}
	if msg != "OTP link sent to n@example.com" || len(creds.invited) != 1 {
		t.Fatalf("unexpected delegation: %q %+v", msg, creds.invited)
	}
}

func TestUserService_ListVisible(t *testing.T) {
	svc := NewUserService(userDirectory(), &stubCredentials{}, zerolog.Nop())

	tests := []struct {
		name  string
		actor domain.Actor
		want  []string
	}{
		{"super admin sees all", superAdmin, []string{"admin-g1", "power-g1", "user-g1", "user-g2", "support"}},
		{"support sees all", domain.Actor{ID: "support", Role: domain.RoleSupport}, []string{"admin-g1", "power-g1", "user-g1", "user-g2", "support"}},
		{"admin sees power users and users of own group", adminG1, []string{"power-g1", "user-g1"}},
		{"power user sees users of own group", domain.Actor{ID: "power-g1", Role: domain.RolePowerUser, GroupID: "g1"}, []string{"user-g1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users, err := svc.ListVisible(context.Background(), tc.actor)
			if err != nil {
				t.Fatalf("ListVisible returned error: %v", err)
			}
			got := ids(users)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for _, id := range tc.want {
				if !got[id] {
					t.Errorf("missing %s in %v", id, got)
				}
			}
		})
	}

	_, err := svc.ListVisible(context.Background(), domain.Actor{ID: "user-g1", Role: domain.RoleUser, GroupID: "g1"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for USER, got %v", err)
	}
}

func TestUserService_GetVisible(t *testing.T) {
	svc := NewUserService(userDirectory(), &stubCredentials{}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.GetVisible(ctx, adminG1, "user-g1"); err != nil {
		t.Fatalf("admin should see user of own group: %v", err)
	}
	if _, err := svc.GetVisible(ctx, adminG1, "user-g2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden across groups, got %v", err)
	}
	if _, err := svc.GetVisible(ctx, adminG1, "admin-g1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin target, got %v", err)
	}
	if _, err := svc.GetVisible(ctx, adminG1, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_DeleteByRole(t *testing.T) {
	repo := userDirectory()
	svc := NewUserService(repo, &stubCredentials{}, zerolog.Nop())
	ctx := context.Background()

	msg, err := svc.DeleteByRole(ctx, adminG1, "user-g1")
	if err != nil {
		t.Fatalf("DeleteByRole returned error: %v", err)
	}
	if msg != "User deleted by Admin" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, err := repo.FindByID(ctx, "user-g1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("deleted user should be invisible")
	}

	if _, err := svc.DeleteByRole(ctx, adminG1, "user-g2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden across groups, got %v", err)
	}
	if _, err := repo.FindByID(ctx, "user-g2"); err != nil {
		t.Fatal("user of g2 must survive a forbidden delete")
	}

	msg, err = svc.DeleteByRole(ctx, superAdmin, "user-g2")
	if err != nil || msg != "User deleted" {
		t.Fatalf("super admin delete = %q, %v", msg, err)
	}

	if _, err := svc.DeleteByRole(ctx, superAdmin, "user-g2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted user, got %v", err)
	}
}

func TestUserService_PowerUserCannotDelete(t *testing.T) {
	svc := NewUserService(userDirectory(), &stubCredentials{}, zerolog.Nop())
	actor := domain.Actor{ID: "power-g1", Role: domain.RolePowerUser, GroupID: "g1"}

	if _, err := svc.DeleteByRole(context.Background(), actor, "user-g1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
