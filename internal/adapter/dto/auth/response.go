package auth

import "time"

// UserResponse represents user information in responses
type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	SchoolID      string     `json:"school_id,omitempty"`
	DashboardPath string     `json:"dashboard_path"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AuthResponse represents the login response
type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int           `json:"expires_in"` // seconds
	TokenType   string        `json:"token_type"` // "Bearer"
	Profile     *UserResponse `json:"profile"`
}

// MeResponse is the caller's profile with their unlocked modules
type MeResponse struct {
	Profile         *UserResponse `json:"profile"`
	DashboardPath   string        `json:"dashboard_path"`
	UnlockedModules []string      `json:"unlocked_modules"`
}
