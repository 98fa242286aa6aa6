package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
	"github.com/tenantgate/admin-portal/internal/core/visibility"
	"github.com/tenantgate/admin-portal/internal/pkg/metrics"
)

var errTitleRequired = domain.NewError(domain.ErrBadRequest, "Title is required")

type TransactionService struct {
	repo   ports.TransactionRepository
	clock  ports.Clock
	logger zerolog.Logger
}

func NewTransactionService(repo ports.TransactionRepository, clock ports.Clock, logger zerolog.Logger) *TransactionService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TransactionService{repo: repo, clock: clock, logger: logger}
}

// Create stores a transaction owned by actor in actor's current group.
func (s *TransactionService) Create(ctx context.Context, actor domain.Actor, title string) (*domain.Transaction, error) {
	d := authorize(s.logger, policy.ActionCreateTransaction, actor, policy.Target{})
	if !d.Allowed {
		return nil, d.Err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errTitleRequired
	}

	now := s.clock.Now()
	tx := &domain.Transaction{
		Title:     title,
		UserID:    actor.ID,
		GroupID:   d.GroupID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	metrics.TransactionsCreatedTotal.Inc()
	return tx, nil
}

// List returns the transactions visible to actor, newest first.
func (s *TransactionService) List(ctx context.Context, actor domain.Actor) ([]*domain.Transaction, error) {
	d := authorize(s.logger, policy.ActionListTransactions, actor, policy.Target{})
	if !d.Allowed {
		return nil, d.Err
	}
	filter, err := visibility.Transactions(d)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *TransactionService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Transaction, error) {
	tx, d, err := s.load(ctx, policy.ActionViewTransaction, actor, id)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, d.Err
	}
	return tx, nil
}

// Update renames a transaction. Only its owner may do so.
func (s *TransactionService) Update(ctx context.Context, actor domain.Actor, id, title string) (*domain.Transaction, error) {
	_, d, err := s.load(ctx, policy.ActionUpdateTransaction, actor, id)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, d.Err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errTitleRequired
	}
	return s.repo.UpdateTitle(ctx, id, title)
}

func (s *TransactionService) Delete(ctx context.Context, actor domain.Actor, id string) (string, error) {
	_, d, err := s.load(ctx, policy.ActionDeleteTransaction, actor, id)
	if err != nil {
		return "", err
	}
	if !d.Allowed {
		return "", d.Err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return "", err
	}

	s.logger.Info().Str("transaction_id", id).Str("deleted_by", actor.ID).Msg("transaction deleted")
	switch d.By {
	case policy.ByAdmin:
		return "Transaction deleted by Admin", nil
	case policy.ByUser:
		return "Transaction deleted by User", nil
	}
	return "Transaction deleted", nil
}

func (s *TransactionService) load(ctx context.Context, action policy.Action, actor domain.Actor, id string) (*domain.Transaction, policy.Decision, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, policy.Decision{}, err
	}
	d := authorize(s.logger, action, actor, policy.Target{OwnerID: tx.UserID, GroupID: tx.GroupID})
	return tx, d, nil
}
