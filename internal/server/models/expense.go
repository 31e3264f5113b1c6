package models

import "time"

// Expense is a cost entry tied to a group. Only its author may modify or
// delete it, regardless of the author's current group membership.
type Expense struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorID    int64     `json:"author_id"`
	GroupID     int64     `json:"group_id"`
}

// ExpenseUpdate carries the optional fields of a partial expense update.
// Nil fields are left untouched.
type ExpenseUpdate struct {
	Title       *string
	Price       *float64
	Description *string
}
