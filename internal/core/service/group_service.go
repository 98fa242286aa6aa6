package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

var errGroupNameRequired = domain.NewError(domain.ErrBadRequest, "Group name is required")

// GroupService administers tenants. Every operation requires manage-groups.
type GroupService struct {
	repo   ports.GroupRepository
	clock  ports.Clock
	logger zerolog.Logger
}

func NewGroupService(repo ports.GroupRepository, clock ports.Clock, logger zerolog.Logger) *GroupService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &GroupService{repo: repo, clock: clock, logger: logger}
}

func (s *GroupService) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errGroupNameRequired
	}

	now := s.clock.Now()
	group := &domain.Group{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	s.logger.Info().Str("group_id", group.ID).Str("name", name).Msg("group created")
	return group, nil
}

func (s *GroupService) List(ctx context.Context, actor domain.Actor) ([]*domain.Group, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *GroupService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *GroupService) Rename(ctx context.Context, actor domain.Actor, id, name string) (*domain.Group, error) {
	if err := s.allowed(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errGroupNameRequired
	}
	return s.repo.Rename(ctx, id, name)
}

func (s *GroupService) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	if err := s.allowed(actor); err != nil {
		return "", err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return "", err
	}
	s.logger.Info().Str("group_id", id).Msg("group deleted")
	return "Group deleted successfully", nil
}

func (s *GroupService) allowed(actor domain.Actor) error {
	d := authorize(s.logger, policy.ActionManageGroups, actor, policy.Target{})
	if !d.Allowed {
		return d.Err
	}
	return nil
}
