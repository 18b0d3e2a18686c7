package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/obelyakova/warehouse-api/internal/identity"
)

// Session records an issued token. Logout deletes the row, after which the
// token stops verifying even though the JWT itself is still within its TTL.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the credentials and returns a signed token.
	Login(ctx context.Context, username, password string) (string, error)

	// Verify resolves a token into the caller identity, rejecting tokens
	// whose session was revoked.
	Verify(ctx context.Context, token string) (*identity.Identity, error)

	// Logout revokes the session behind the caller's token.
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// SessionRepository defines session data storage.
type SessionRepository interface {
	CreateSession(ctx context.Context, s *Session) error
	SessionExists(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
