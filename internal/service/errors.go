package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown user and wrong password;
	// callers never learn which factor failed.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Token errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("could not validate credentials")

	ErrMissingRefreshToken = errors.New("missing refresh token")

	// ErrUserNotFound is internal; the boundary reports it as ErrTokenInvalid.
	ErrUserNotFound = errors.New("user not found")
)
