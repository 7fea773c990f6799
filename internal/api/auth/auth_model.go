package auth

// SignupRequest represents the signup request body.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest represents the signin request body.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
