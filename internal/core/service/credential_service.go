package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/policy"
	"github.com/tenantgate/admin-portal/internal/core/ports"
	"github.com/tenantgate/admin-portal/internal/pkg/metrics"
)

const (
	defaultSessionTTL = 24 * time.Hour
	refreshTTL        = time.Hour
	minPasswordLength = 6
)

var (
	errAccountMissing = domain.NewError(domain.ErrUnauthorized, "User not found")
	errDelivery       = domain.NewError(domain.ErrDelivery, "Failed to send OTP link")
)

// CredentialDeps groups the collaborators of CredentialService. Clock,
// Hasher, Codes generator and Guard are optional.
type CredentialDeps struct {
	Users      ports.UserRepository
	Codes      ports.CodeRepository
	Notifier   ports.Notifier
	Tokens     ports.TokenIssuer
	Hasher     ports.PasswordHasher
	Generator  ports.CodeGenerator
	Clock      ports.Clock
	Guard      ports.InviteGuard
	LinkBase   string
	SessionTTL time.Duration
}

// CredentialService runs onboarding (invite, verify, set password) and issues
// session tokens.
type CredentialService struct {
	users      ports.UserRepository
	codes      ports.CodeRepository
	notifier   ports.Notifier
	tokens     ports.TokenIssuer
	hasher     ports.PasswordHasher
	generator  ports.CodeGenerator
	clock      ports.Clock
	guard      ports.InviteGuard
	linkBase   string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewCredentialService(deps CredentialDeps, logger zerolog.Logger) *CredentialService {
	s := &CredentialService{
		users:      deps.Users,
		codes:      deps.Codes,
		notifier:   deps.Notifier,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		generator:  deps.Generator,
		clock:      deps.Clock,
		guard:      deps.Guard,
		linkBase:   deps.LinkBase,
		sessionTTL: deps.SessionTTL,
		logger:     logger,
	}
	if s.hasher == nil {
		s.hasher = BcryptHasher{}
	}
	if s.generator == nil {
		s.generator = RandomCodeGenerator{}
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = defaultSessionTTL
	}
	return s
}

// Invite creates an account for input.Email on behalf of actor and sends it
// a one-time code. The code is never returned.
func (s *CredentialService) Invite(ctx context.Context, actor domain.Actor, input ports.InviteInput) (msg string, err error) {
	defer func() { metrics.CredentialEventsTotal.WithLabelValues("invite", metrics.Result(err)).Inc() }()

	email := strings.TrimSpace(input.Email)

	if s.guard != nil {
		lockToken, acquired, gerr := s.guard.Acquire(ctx, email)
		switch {
		case gerr != nil:
			metrics.InviteGuardTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(gerr).Str("email", email).Msg("invite guard unavailable")
		case !acquired:
			metrics.InviteGuardTotal.WithLabelValues("contended").Inc()
			return "", domain.ErrInviteInProgress
		default:
			metrics.InviteGuardTotal.WithLabelValues("acquired").Inc()
			defer func() {
				if rerr := s.guard.Release(context.WithoutCancel(ctx), email, lockToken); rerr != nil {
					s.logger.Warn().Err(rerr).Str("email", email).Msg("invite guard release failed")
				}
			}()
		}
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	d := authorize(s.logger, policy.ActionCreateUser, actor, policy.Target{Role: input.Role, GroupID: input.GroupID})
	if !d.Allowed {
		return "", d.Err
	}

	now := s.clock.Now()
	user := domain.NewInvitedUser(email, input.Role, d.GroupID, now)
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	metrics.UsersInvitedTotal.WithLabelValues(string(user.Role)).Inc()

	code, err := s.generator.Generate()
	if err != nil {
		return "", err
	}
	if err := s.codes.Create(ctx, domain.NewOneTimeCode(email, code, now)); err != nil {
		return "", err
	}
	if err := user.Transition(domain.StateCodeIssued, now); err != nil {
		return "", err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("email", email).
		Str("role", string(user.Role)).
		Str("group_id", user.GroupID).
		Str("invited_by", actor.ID).
		Msg("user invited")

	if err := s.notifier.SendInviteLink(ctx, actor.Email, email, s.inviteLink(email, code)); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("invite link delivery failed")
		return "", errDelivery
	}
	return "OTP link sent to " + email, nil
}

// VerifyOTP checks the code issued to email and returns a session token. The
// code stays usable until the password is set.
func (s *CredentialService) VerifyOTP(ctx context.Context, email, code string) (token string, err error) {
	defer func() { metrics.CredentialEventsTotal.WithLabelValues("verify_otp", metrics.Result(err)).Inc() }()

	otp, err := s.codes.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrCodeInvalid
		}
		return "", err
	}
	now := s.clock.Now()
	if otp.Expired(now) {
		return "", domain.ErrCodeInvalid
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", errAccountMissing
		}
		return "", err
	}

	if user.State != domain.StateActive {
		if err := user.Transition(domain.StateCodeVerified, now); err != nil {
			return "", err
		}
		if err := s.users.Update(ctx, user); err != nil {
			return "", err
		}
	}

	return s.GenerateJWT(user.Actor(), s.sessionTTL)
}

// SetPassword activates the account of email and discards its codes.
func (s *CredentialService) SetPassword(ctx context.Context, email, password string) (msg string, err error) {
	defer func() { metrics.CredentialEventsTotal.WithLabelValues("set_password", metrics.Result(err)).Inc() }()

	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", domain.ErrPasswordTooShort
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", errAccountMissing
		}
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	if err := user.Activate(hash, s.clock.Now()); err != nil {
		return "", err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}
	if err := s.codes.DeleteByEmail(ctx, email); err != nil {
		return "", fmt.Errorf("discard codes: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password set")
	return "Password set successfully. OTP expired.", nil
}

// LoginWithPassword returns a session token for an activated account.
func (s *CredentialService) LoginWithPassword(ctx context.Context, email, password string) (token string, err error) {
	defer func() { metrics.CredentialEventsTotal.WithLabelValues("login", metrics.Result(err)).Inc() }()

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsOtpVerified() || !user.HasPassword() {
		return "", domain.ErrInvalidCredentials
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return s.GenerateJWT(user.Actor(), s.sessionTTL)
}

// GenerateJWT mints a session token for subject.
func (s *CredentialService) GenerateJWT(subject domain.Actor, ttl time.Duration) (string, error) {
	return s.tokens.Issue(subject, ttl)
}

// Refresh re-mints the caller's already verified claims for one hour and
// returns the account they belong to.
func (s *CredentialService) Refresh(ctx context.Context, claims ports.Claims) (token string, user *domain.User, err error) {
	defer func() { metrics.CredentialEventsTotal.WithLabelValues("refresh", metrics.Result(err)).Inc() }()

	user, err = s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, errAccountMissing
		}
		return "", nil, err
	}
	token, err = s.GenerateJWT(claims.Actor(), refreshTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// EnsureSuperAdmin creates an active SUPER_ADMIN for email unless an account
// with that email already exists.
func (s *CredentialService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Debug().Str("email", email).Msg("super admin already present")
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user := domain.NewActiveUser(email, domain.RoleSuperAdmin, "", hash, s.clock.Now())
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return err
	}
	s.logger.Info().Str("email", email).Msg("super admin seeded")
	return nil
}

func (s *CredentialService) inviteLink(email, code string) string {
	sep := "?"
	if strings.Contains(s.linkBase, "?") {
		sep = "&"
	}
	return s.linkBase + sep + "email=" + url.QueryEscape(email) + "&code=" + url.QueryEscape(code)
}
