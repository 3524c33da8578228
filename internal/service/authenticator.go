package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkarlsen/tenant-auth-api/internal/domain"
	"github.com/mkarlsen/tenant-auth-api/internal/repository"
)

// Authenticator establishes caller identity at login. Every request after
// login goes through token validation instead.
type Authenticator struct {
	users repository.UserRepository
}

func NewAuthenticator(users repository.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate verifies the username/password pair against the shared-schema
// directory. Unknown user, wrong password, and inactive user all collapse into
// ErrInvalidCredentials so responses cannot be used to enumerate usernames.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := a.users.GetByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
