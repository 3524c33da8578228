package dto

// TokenResponse is the login and refresh response body. The refresh token is
// never part of it; that one travels only in the cookie.
type TokenResponse struct {
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	Username     string `json:"username"`
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	TenantSchema string `json:"tenant_schema"`
}
