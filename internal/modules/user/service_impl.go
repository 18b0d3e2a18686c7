package user

import (
	"context"
	"net/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/identity"
)

const minPasswordLen = 6

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	verr := &apierr.ValidationError{}

	if req.Username == "" {
		verr.Add("username", "this field is required")
	} else {
		taken, err := s.repo.UsernameExists(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("username", "this field must be unique")
		}
	}

	if req.Email == "" {
		verr.Add("email", "this field is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		verr.Add("email", "enter a valid email address")
	} else {
		taken, err := s.repo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("email", "this field must be unique")
		}
	}

	if len(req.Password) < minPasswordLen {
		verr.Add("password", "ensure this field has at least 6 characters")
	}

	role := identity.Role(req.Group)
	if !role.Valid() {
		verr.Add("group", "not a valid choice")
	}

	if !verr.Empty() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Group:        role,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateUser applies a partial update. Each provided field is validated and
// persisted independently; omitted fields stay as they are.
func (s *service) UpdateUser(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &apierr.ValidationError{}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			verr.Add("email", "enter a valid email address")
		} else if *req.Email != u.Email {
			taken, err := s.repo.EmailExists(ctx, *req.Email)
			if err != nil {
				return nil, err
			}
			if taken {
				verr.Add("email", "this field must be unique")
			}
		}
	}

	if req.Password != nil && len(*req.Password) < minPasswordLen {
		verr.Add("password", "ensure this field has at least 6 characters")
	}

	if !verr.Empty() {
		return nil, verr
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
