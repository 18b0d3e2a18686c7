package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/identity"
	"github.com/obelyakova/warehouse-api/internal/modules/user"
)

const tokenTTL = 24 * time.Hour

type claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type service struct {
	userRepo    user.Repository
	sessionRepo SessionRepository
	secret      []byte
}

// NewService creates a new auth service. The secret signs issued tokens.
func NewService(userRepo user.Repository, sessionRepo SessionRepository, secret []byte) Service {
	return &service{userRepo: userRepo, sessionRepo: sessionRepo, secret: secret}
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", invalidCredentials()
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", invalidCredentials()
	}

	session := &Session{ID: uuid.New(), UserID: u.ID}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Role: string(u.Group),
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Id:        session.ID.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	})
	return token.SignedString(s.secret)
}

func (s *service) Verify(ctx context.Context, tokenString string) (*identity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierr.ErrUnauthenticated
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.ErrUnauthenticated
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, apierr.ErrUnauthenticated
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, apierr.ErrUnauthenticated
	}
	sessionID, err := uuid.Parse(c.Id)
	if err != nil {
		return nil, apierr.ErrUnauthenticated
	}

	alive, err := s.sessionRepo.SessionExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !alive {
		return nil, apierr.ErrUnauthenticated
	}

	return &identity.Identity{
		UserID:    userID,
		Role:      identity.Role(c.Role),
		SessionID: sessionID,
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

func invalidCredentials() error {
	return apierr.Validation("non_field_errors", "unable to log in with provided credentials")
}
