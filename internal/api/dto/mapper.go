package dto

import "github.com/mkarlsen/tenant-auth-api/internal/service"

func UserResponseFromProfile(profile *service.UserProfile) UserResponse {
	return UserResponse{
		Username:     profile.Username,
		UserID:       profile.UserID,
		Email:        profile.Email,
		FullName:     profile.FullName,
		TenantSchema: profile.TenantSchema,
	}
}
