package domain

import "time"

// Transaction is a record owned by a USER. UserID and GroupID are fixed at
// creation; GroupID keeps the owner's group as it was at that moment.
type Transaction struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	UserID    string     `json:"user_id"`
	GroupID   string     `json:"group_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}
