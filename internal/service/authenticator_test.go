package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkarlsen/tenant-auth-api/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveUsers(ctx context.Context, tenantID int64) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AuthenticatorTestSuite struct {
	suite.Suite
	mockUsers     *MockUserRepository
	authenticator *Authenticator
	passwordHash  string
}

func (s *AuthenticatorTestSuite) SetupTest() {
	s.mockUsers = new(MockUserRepository)
	s.authenticator = NewAuthenticator(s.mockUsers)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.passwordHash = string(hash)
}

func TestAuthenticator(t *testing.T) {
	suite.Run(t, new(AuthenticatorTestSuite))
}

func (s *AuthenticatorTestSuite) activeUser() *domain.User {
	return &domain.User{
		AuditRecord: domain.AuditRecord{ID: 1000, CreatedAt: time.Now()},
		TenantID:    1000,
		Name:        "admin",
		Password:    s.passwordHash,
		Email:       "admin@tenant.com",
		Active:      true,
	}
}

func (s *AuthenticatorTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	s.mockUsers.On("GetByName", ctx, "admin").Return(s.activeUser(), nil)

	user, err := s.authenticator.Authenticate(ctx, "admin", "pw1")

	s.NoError(err)
	s.Equal(int64(1000), user.ID)
	s.Equal("admin", user.Name)
	s.mockUsers.AssertExpectations(s.T())
}

func (s *AuthenticatorTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	s.mockUsers.On("GetByName", ctx, "admin").Return(s.activeUser(), nil)

	_, err := s.authenticator.Authenticate(ctx, "admin", "wrongpw")

	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthenticatorTestSuite) TestAuthenticate_UnknownUser() {
	ctx := context.Background()
	s.mockUsers.On("GetByName", ctx, "ghost").Return(nil, nil)

	_, err := s.authenticator.Authenticate(ctx, "ghost", "pw1")

	s.ErrorIs(err, ErrInvalidCredentials)
}

// Unknown user and wrong password must be indistinguishable to callers.
func (s *AuthenticatorTestSuite) TestAuthenticate_UniformFailure() {
	ctx := context.Background()
	s.mockUsers.On("GetByName", ctx, "admin").Return(s.activeUser(), nil)
	s.mockUsers.On("GetByName", ctx, "ghost").Return(nil, nil)

	_, errWrongPassword := s.authenticator.Authenticate(ctx, "admin", "wrongpw")
	_, errUnknownUser := s.authenticator.Authenticate(ctx, "ghost", "pw1")

	s.Equal(errWrongPassword, errUnknownUser)
}

func (s *AuthenticatorTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	user := s.activeUser()
	user.Active = false
	s.mockUsers.On("GetByName", ctx, "admin").Return(user, nil)

	_, err := s.authenticator.Authenticate(ctx, "admin", "pw1")

	s.ErrorIs(err, ErrInvalidCredentials)
}
