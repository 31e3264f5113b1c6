package models

import "time"

// Group is a shared-expense group. The author is always a member.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
