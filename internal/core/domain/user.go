package domain

import "fmt"

// User is an authenticated BdLens account.
type User struct {
	// ID is the backend UUID of the account.
	ID string `json:"id"`

	// Email is the login address.
	Email string `json:"email"`

	// IsAdmin grants access to source management, uploads and analytics.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is when the account was registered.
	CreatedAt Time `json:"created_at"`
}

// Validate checks the fields callers depend on.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("%w: user missing id", ErrInvalidPayload)
	}
	if u.Email == "" {
		return fmt.Errorf("%w: user %s missing email", ErrInvalidPayload, u.ID)
	}
	return nil
}

// Role returns a display label for the account's role.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

// Credentials is the register/login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Validate checks the embedded user.
func (r *LoginResult) Validate() error {
	return r.User.Validate()
}

// Message is a bare acknowledgement such as the logout response.
type Message struct {
	Message string `json:"message"`
}
