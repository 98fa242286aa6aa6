package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(t time.Time) *fixedClock { return &fixedClock{now: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	seq     int
	findErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return domain.ErrUserExists
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.DeletedAt != nil {
			continue
		}
		if filter.GroupID != "" && u.GroupID != filter.GroupID {
			continue
		}
		if len(filter.Roles) > 0 && !u.Role.In(filter.Roles...) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func (r *stubUserRepo) count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

type stubCodeRepo struct {
	mu    sync.Mutex
	codes []*domain.OneTimeCode
}

func (r *stubCodeRepo) Create(_ context.Context, code *domain.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *code
	r.codes = append(r.codes, &clone)
	return nil
}

func (r *stubCodeRepo) FindByEmailAndCode(_ context.Context, email, code string) (*domain.OneTimeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.Email == email && c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCodeNotFound
}

func (r *stubCodeRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return nil
}

func (r *stubCodeRepo) forEmail(email string) []*domain.OneTimeCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.OneTimeCode
	for _, c := range r.codes {
		if c.Email == email {
			out = append(out, c)
		}
	}
	return out
}

type sentLink struct {
	from, to, link string
}

type stubNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentLink
}

func (n *stubNotifier) SendInviteLink(_ context.Context, from, to, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentLink{from: from, to: to, link: link})
	return nil
}

type stubCodeGenerator struct {
	code string
}

func (g stubCodeGenerator) Generate() (string, error) { return g.code, nil }

// plainHasher keeps tests fast; bcrypt is covered separately.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) bool { return hash == "hashed:"+password }

type stubGuard struct {
	mu   sync.Mutex
	held map[string]string
	seq  int
	err  error
}

func (g *stubGuard) Acquire(_ context.Context, email string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", false, g.err
	}
	if g.held == nil {
		g.held = make(map[string]string)
	}
	if _, ok := g.held[email]; ok {
		return "", false, nil
	}
	g.seq++
	token := fmt.Sprintf("token-%d", g.seq)
	g.held[email] = token
	return token, true, nil
}

func (g *stubGuard) Release(_ context.Context, email, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[email] == token {
		delete(g.held, email)
	}
	return nil
}

type stubTransactionRepo struct {
	mu  sync.Mutex
	txs map[string]*domain.Transaction
	seq int
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{txs: make(map[string]*domain.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	tx.ID = fmt.Sprintf("tx-%d", r.seq)
	clone := *tx
	r.txs[tx.ID] = &clone
	return nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.DeletedAt != nil {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *tx
	return &clone, nil
}

func (r *stubTransactionRepo) List(_ context.Context, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range r.txs {
		if tx.DeletedAt != nil {
			continue
		}
		if filter.GroupID != "" && tx.GroupID != filter.GroupID {
			continue
		}
		if filter.OwnerID != "" && tx.UserID != filter.OwnerID {
			continue
		}
		clone := *tx
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTransactionRepo) UpdateTitle(_ context.Context, id, title string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.DeletedAt != nil {
		return nil, domain.ErrTransactionNotFound
	}
	tx.Title = title
	clone := *tx
	return &clone, nil
}

func (r *stubTransactionRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok || tx.DeletedAt != nil {
		return domain.ErrTransactionNotFound
	}
	now := time.Now()
	tx.DeletedAt = &now
	return nil
}

type stubGroupRepo struct {
	groups map[string]*domain.Group
	seq    int
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{groups: make(map[string]*domain.Group)}
}

func (r *stubGroupRepo) Create(_ context.Context, g *domain.Group) error {
	for _, existing := range r.groups {
		if existing.Name == g.Name && existing.DeletedAt == nil {
			return domain.ErrGroupExists
		}
	}
	r.seq++
	g.ID = fmt.Sprintf("group-%d", r.seq)
	clone := *g
	r.groups[g.ID] = &clone
	return nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) List(_ context.Context) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.groups {
		if g.DeletedAt == nil {
			clone := *g
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubGroupRepo) Rename(_ context.Context, id, name string) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrGroupNotFound
	}
	for _, other := range r.groups {
		if other.ID != id && other.Name == name && other.DeletedAt == nil {
			return nil, domain.ErrGroupExists
		}
	}
	g.Name = name
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) SoftDelete(_ context.Context, id string) error {
	g, ok := r.groups[id]
	if !ok || g.DeletedAt != nil {
		return domain.ErrGroupNotFound
	}
	now := time.Now()
	g.DeletedAt = &now
	return nil
}

var errBoom = errors.New("boom")
