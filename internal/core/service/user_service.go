package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
	"github.com/tenantgate/admin-portal/internal/core/visibility"
)

type UserService struct {
	repo        ports.UserRepository
	credentials ports.CredentialService
	logger      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, credentials ports.CredentialService, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, credentials: credentials, logger: logger}
}

// Invite delegates account creation to the credential lifecycle.
func (s *UserService) Invite(ctx context.Context, actor domain.Actor, input ports.InviteInput) (string, error) {
	return s.credentials.Invite(ctx, actor, input)
}

// ListVisible returns the users actor may see.
func (s *UserService) ListVisible(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	d := authorize(s.logger, policy.ActionListUsers, actor, policy.Target{})
	if !d.Allowed {
		return nil, d.Err
	}
	filter, err := visibility.Users(d)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// GetVisible returns user id when actor may see it.
func (s *UserService) GetVisible(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := authorize(s.logger, policy.ActionViewUser, actor, userTarget(user))
	if !d.Allowed {
		return nil, d.Err
	}
	return user, nil
}

// DeleteByRole soft-deletes user id when actor's role allows it.
func (s *UserService) DeleteByRole(ctx context.Context, actor domain.Actor, id string) (string, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	d := authorize(s.logger, policy.ActionDeleteUser, actor, userTarget(user))
	if !d.Allowed {
		return "", d.Err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", id).Str("deleted_by", actor.ID).Msg("user deleted")
	if d.By == policy.ByAdmin {
		return "User deleted by Admin", nil
	}
	return "User deleted", nil
}

func userTarget(u *domain.User) policy.Target {
	return policy.Target{Role: u.Role, OwnerID: u.ID, GroupID: u.GroupID}
}
