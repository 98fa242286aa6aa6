package handler

import (
	"time"

	"github.com/tenantgate/admin-portal/internal/core/domain"
)

// --- Requests ---

type verifyOTPRequest struct {
	Email string `query:"email" validate:"required,email"`
	Code  string `query:"code"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type createUserRequest struct {
	Email   string `json:"email"    validate:"required,email"`
	Role    string `json:"role"     validate:"required"`
	GroupID string `json:"group_id"`
}

type transactionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type groupRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// --- Responses ---

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type refreshResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

type userResponse struct {
	ID            string                 `json:"id"`
	Email         string                 `json:"email"`
	Role          domain.Role            `json:"role"`
	GroupID       string                 `json:"group_id,omitempty"`
	State         domain.OnboardingState `json:"state"`
	IsOtpVerified bool                   `json:"is_otp_verified"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type transactionResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UserID    string    `json:"user_id"`
	GroupID   string    `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type groupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		GroupID:       u.GroupID,
		State:         u.State,
		IsOtpVerified: u.IsOtpVerified(),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		Title:     t.Title,
		UserID:    t.UserID,
		GroupID:   t.GroupID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toTransactionResponses(txs []*domain.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

func toGroupResponse(g *domain.Group) groupResponse {
	return groupResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt}
}

func toGroupResponses(groups []*domain.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out
}
