package types

import "time"

// Bookmark is an owner-scoped saved link.
type Bookmark struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateBookmarkParams carries the POST /bookmarks body.
type CreateBookmarkParams struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description *string `json:"description,omitempty"`
}

// UpdateBookmarkParams carries the PATCH /bookmarks/{id} body. Nil fields are
// left untouched.
type UpdateBookmarkParams struct {
	Title       *string `json:"title,omitempty"`
	Link        *string `json:"link,omitempty"`
	Description *string `json:"description,omitempty"`
}
