package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
	"github.com/momsgrove/grove-api/pkg/jwt"
)

// ModuleResolver returns the module ids a school has unlocked
type ModuleResolver interface {
	UnlockedIDs(ctx context.Context, schoolID uuid.UUID) ([]string, error)
}

// Service handles password login and per-request identity resolution
type Service struct {
	userRepo   repositories.UserRepository
	modules    ModuleResolver
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewService creates a new auth service
func NewService(
	userRepo repositories.UserRepository,
	modules ModuleResolver,
	jwtManager *jwt.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		modules:    modules,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginResult is returned by a successful login
type LoginResult struct {
	User        *entities.User
	AccessToken string
	ExpiresIn   int64
}

// Login checks the credentials and issues an access token
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, entities.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, entities.ErrUserInactive
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	// Update last login (non-fatal)
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil && s.logger != nil {
		s.logger.Warn("auth.last_login.update_failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	user.UpdateLastLogin()

	return &LoginResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

// Authenticate verifies the token and resolves the caller from the store.
// Nothing about the caller is kept between requests.
func (s *Service) Authenticate(ctx context.Context, token string) (*entities.Principal, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, entities.ErrUserInactive
	}

	principal := &entities.Principal{
		UserID:          user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		SchoolID:        user.SchoolID,
		UnlockedModules: []string{},
	}

	if schoolID, err := principal.School(); err == nil && s.modules != nil {
		ids, err := s.modules.UnlockedIDs(ctx, schoolID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve modules: %w", err)
		}
		principal.UnlockedModules = ids
	}

	return principal, nil
}

// Profile returns the stored account of the caller
func (s *Service) Profile(ctx context.Context, principal *entities.Principal) (*entities.User, error) {
	if principal == nil {
		return nil, entities.ErrUnauthorized
	}
	return s.userRepo.FindByID(ctx, principal.UserID)
}
