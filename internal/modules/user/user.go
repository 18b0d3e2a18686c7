package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/obelyakova/warehouse-api/internal/identity"
)

// User represents an account in the system. The role is exposed as "group"
// on the wire; the password hash is never serialized.
type User struct {
	ID           uuid.UUID     `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Group        identity.Role `json:"group"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
