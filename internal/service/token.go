package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkarlsen/tenant-auth-api/internal/config"
)

// TokenService issues and validates the signed access and refresh tokens.
// Both kinds share one signing mechanism; they differ only in TTL and in how
// they are delivered to the client.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService pins the signing algorithm from configuration. Only the
// HMAC family is accepted; anything else, including "none", is a
// misconfiguration caught at startup rather than at validation time.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	method := jwt.GetSigningMethod(cfg.AuthAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.AuthAlgorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q, expected an HMAC variant", cfg.AuthAlgorithm)
	}

	return &TokenService{
		secret:     []byte(cfg.AuthSecretKey),
		method:     method,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
	}, nil
}

// Issue signs a token carrying the user id as subject and an expiry ttl from
// now. The signature is a pure function of claims and server secret.
func (s *TokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(s.now().UTC().Add(ttl)),
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *TokenService) IssueAccessToken(userID int64) (string, error) {
	return s.Issue(userID, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	return s.Issue(userID, s.refreshTTL)
}

// RefreshTokenTTL is exposed for the cookie max-age.
func (s *TokenService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// Validate checks signature and expiry and extracts the user id. The signing
// method must match the configured one exactly. ErrTokenExpired and
// ErrTokenInvalid are distinguished so callers can force re-login on expiry
// and reject everything else outright.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}
