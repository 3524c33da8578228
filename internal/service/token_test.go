package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/mkarlsen/tenant-auth-api/internal/config"
)

type TokenServiceTestSuite struct {
	suite.Suite
	service *TokenService
	clock   time.Time
}

func (s *TokenServiceTestSuite) SetupTest() {
	cfg := &config.Config{
		AuthSecretKey:   "test-secret-key",
		AuthAlgorithm:   "HS256",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	service, err := NewTokenService(cfg)
	s.Require().NoError(err)

	s.clock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return s.clock }
	s.service = service
}

func TestTokenService(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) TestIssueAndValidate_RoundTrip() {
	token, err := s.service.IssueAccessToken(1000)
	s.NoError(err)
	s.NotEmpty(token)

	userID, err := s.service.Validate(token)
	s.NoError(err)
	s.Equal(int64(1000), userID)
}

func (s *TokenServiceTestSuite) TestValidate_ExpiredToken() {
	token, err := s.service.Issue(1000, 5*time.Minute)
	s.NoError(err)

	s.clock = s.clock.Add(6 * time.Minute)

	_, err = s.service.Validate(token)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *TokenServiceTestSuite) TestValidate_ValidUntilExpiry() {
	token, err := s.service.Issue(1000, 5*time.Minute)
	s.NoError(err)

	s.clock = s.clock.Add(4 * time.Minute)

	userID, err := s.service.Validate(token)
	s.NoError(err)
	s.Equal(int64(1000), userID)
}

func (s *TokenServiceTestSuite) TestValidate_TamperedSignature() {
	token, err := s.service.IssueAccessToken(1000)
	s.NoError(err)

	// Flip the first character of the signature segment; its bits are always
	// significant to the decoded signature.
	dot := strings.LastIndexByte(token, '.')
	tampered := []byte(token)
	if tampered[dot+1] == 'A' {
		tampered[dot+1] = 'B'
	} else {
		tampered[dot+1] = 'A'
	}

	_, err = s.service.Validate(string(tampered))
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *TokenServiceTestSuite) TestValidate_Malformed() {
	_, err := s.service.Validate("not-a-token")
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *TokenServiceTestSuite) TestValidate_RejectsOtherHMACVariant() {
	claims := jwt.RegisteredClaims{
		Subject:   "1000",
		ExpiresAt: jwt.NewNumericDate(s.clock.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret-key"))
	s.NoError(err)

	_, err = s.service.Validate(token)
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *TokenServiceTestSuite) TestValidate_RejectsNoneAlgorithm() {
	claims := jwt.RegisteredClaims{
		Subject:   "1000",
		ExpiresAt: jwt.NewNumericDate(s.clock.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.NoError(err)

	_, err = s.service.Validate(token)
	s.ErrorIs(err, ErrTokenInvalid)
}

func (s *TokenServiceTestSuite) TestValidate_RejectsNonNumericSubject() {
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(s.clock.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	s.NoError(err)

	_, err = s.service.Validate(token)
	s.ErrorIs(err, ErrTokenInvalid)
}

func TestNewTokenService_RejectsUnknownAlgorithm(t *testing.T) {
	_, err := NewTokenService(&config.Config{AuthSecretKey: "k", AuthAlgorithm: "HS9000"})
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestNewTokenService_RejectsNonHMACAlgorithm(t *testing.T) {
	_, err := NewTokenService(&config.Config{AuthSecretKey: "k", AuthAlgorithm: "RS256"})
	if err == nil {
		t.Fatal("expected error for non-HMAC algorithm")
	}
}

func TestNewTokenService_RejectsNoneAlgorithm(t *testing.T) {
	_, err := NewTokenService(&config.Config{AuthSecretKey: "k", AuthAlgorithm: "none"})
	if err == nil {
		t.Fatal("expected error for none algorithm")
	}
}
