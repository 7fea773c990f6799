package types

import "time"

// UserProfile is the client-facing view of a user. The password hash is
// deliberately absent from the struct so it can never leak through encoding.
type UserProfile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpdateProfileParams carries the PATCH /users body. Nil means "leave as is".
type UpdateProfileParams struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}
