package presenter

import (
	authDTO "github.com/momsgrove/grove-api/internal/adapter/dto/auth"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/auth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}

	response := &authDTO.UserResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Name:          u.Name,
		Role:          string(u.Role),
		DashboardPath: u.Role.DashboardPath(),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}

	if u.SchoolID != nil {
		response.SchoolID = u.SchoolID.String()
	}

	return response
}

// ToAuthResponse converts a login result to the DTO AuthResponse
func ToAuthResponse(result *auth.LoginResult) *authDTO.AuthResponse {
	if result == nil {
		return nil
	}

	return &authDTO.AuthResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   int(result.ExpiresIn),
		TokenType:   "Bearer",
		Profile:     ToUserResponse(result.User),
	}
}

// ToMeResponse combines the stored profile with the request principal
func ToMeResponse(u *entities.User, principal *entities.Principal) *authDTO.MeResponse {
	modules := []string{}
	if principal != nil && principal.UnlockedModules != nil {
		modules = principal.UnlockedModules
	}
	return &authDTO.MeResponse{
		Profile:         ToUserResponse(u),
		DashboardPath:   u.Role.DashboardPath(),
		UnlockedModules: modules,
	}
}
