package dto

// LoginRequest carries the login form. AutoRefresh defaults to true when the
// field is absent, so it is a pointer to tell "absent" from "false".
type LoginRequest struct {
	Username    string `form:"username" binding:"required"`
	Password    string `form:"password" binding:"required"`
	AutoRefresh *bool  `form:"auto_refresh"`
}

// WantsRefreshToken reports whether the login response should set the refresh
// cookie.
func (r *LoginRequest) WantsRefreshToken() bool {
	return r.AutoRefresh == nil || *r.AutoRefresh
}
