package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/tally/internal/api/domain"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/idx"
)

type UserService struct {
	Store store.Store
}

// CreateUserParams carries the fields a caller may set on a new user. The
// plaintext password is hashed here and never stored.
type CreateUserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateUserParams mirrors CreateUserParams for updates. An empty Password
// keeps the existing hash.
type UpdateUserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (domain.User, error) {
	if err := validateUserFields(params.FirstName, params.LastName, params.Email); err != nil {
		return domain.User{}, err
	}
	if len(params.Password) < MinPasswordLength {
		return domain.User{}, validationErr("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Email:        strings.TrimSpace(params.Email),
		PasswordHash: hash,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, user.ID)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, params UpdateUserParams) (domain.User, error) {
	if err := validateUserFields(params.FirstName, params.LastName, params.Email); err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.FirstName = strings.TrimSpace(params.FirstName)
	user.LastName = strings.TrimSpace(params.LastName)
	user.Email = strings.TrimSpace(params.Email)

	if params.Password != "" {
		if len(params.Password) < MinPasswordLength {
			return domain.User{}, validationErr("password must be at least %d characters", MinPasswordLength)
		}
		hash, err := cryptox.HashPassword(params.Password)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.Store.Users().UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.Store.Users().DeleteUser(ctx, id)
}

func validateUserFields(firstName, lastName, email string) error {
	if strings.TrimSpace(firstName) == "" {
		return validationErr("first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return validationErr("last name is required")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return validationErr("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return validationErr("email is not a valid address")
	}
	return nil
}
