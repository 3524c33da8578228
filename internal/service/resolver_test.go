package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkarlsen/tenant-auth-api/internal/domain"
)

type TenantResolverTestSuite struct {
	suite.Suite
	mockUsers *MockUserRepository
	resolver  *TenantResolver
}

func (s *TenantResolverTestSuite) SetupTest() {
	s.mockUsers = new(MockUserRepository)
	s.resolver = NewTenantResolver(s.mockUsers)
}

func TestTenantResolver(t *testing.T) {
	suite.Run(t, new(TenantResolverTestSuite))
}

func (s *TenantResolverTestSuite) TestResolve_Success() {
	ctx := context.Background()
	user := &domain.User{
		AuditRecord: domain.AuditRecord{ID: 1001},
		TenantID:    1000,
		Name:        "admin",
		Email:       "admin@tenant.com",
		Active:      true,
		Tenant: &domain.Tenant{
			AuditRecord: domain.AuditRecord{ID: 1000},
			Name:        "Default Tenant",
			Schema:      "tenant_default",
			Active:      true,
		},
	}
	s.mockUsers.On("GetByID", ctx, int64(1001)).Return(user, nil)

	profile, err := s.resolver.Resolve(ctx, 1001)

	s.NoError(err)
	s.Equal("admin", profile.Username)
	s.Equal(int64(1001), profile.UserID)
	s.Equal("admin@tenant.com", profile.Email)
	s.Equal("tenant_default", profile.TenantSchema)
	s.mockUsers.AssertExpectations(s.T())
}

func (s *TenantResolverTestSuite) TestResolve_UnknownUser() {
	ctx := context.Background()
	s.mockUsers.On("GetByID", ctx, int64(9999)).Return(nil, nil)

	_, err := s.resolver.Resolve(ctx, 9999)

	s.ErrorIs(err, ErrUserNotFound)
}

func (s *TenantResolverTestSuite) TestResolve_InactiveUser() {
	ctx := context.Background()
	user := &domain.User{
		AuditRecord: domain.AuditRecord{ID: 1001},
		Name:        "admin",
		Active:      false,
	}
	s.mockUsers.On("GetByID", ctx, int64(1001)).Return(user, nil)

	_, err := s.resolver.Resolve(ctx, 1001)

	s.ErrorIs(err, ErrUserNotFound)
}
