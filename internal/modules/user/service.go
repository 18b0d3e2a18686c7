package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, req UpdateRequest) (*User, error)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Group    string `json:"group"`
}

// UpdateRequest carries a partial update; omitted fields are untouched.
type UpdateRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
