package domain

import "time"

// Group is a tenant. It bounds what ADMIN, POWER_USER and USER accounts see.
type Group struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
