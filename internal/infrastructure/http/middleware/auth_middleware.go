package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/momsgrove/grove-api/errors"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// PrincipalKey is the echo context key holding *entities.Principal
const PrincipalKey = "principal"

// Authenticator resolves the caller behind an access token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.Principal, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and
// stores the resolved principal as "principal" and its id as "user_id".
// The lookup runs on every request; nothing is cached here.
func EchoAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return apperrors.ErrUnauthenticated()
			}

			principal, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, entities.ErrUserInactive):
					return apperrors.ErrUserInactive()
				case errors.Is(err, entities.ErrInvalidToken):
					return apperrors.ErrInvalidToken()
				default:
					return apperrors.ErrInternal(err)
				}
			}

			c.Set(PrincipalKey, principal)
			c.Set("user_id", principal.UserID)

			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not listed
func RequireRole(roles ...entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return apperrors.ErrUnauthenticated()
			}
			if !principal.HasRole(roles...) {
				return apperrors.ErrPermissionDenied("insufficient role")
			}
			return next(c)
		}
	}
}

// RequireModule rejects callers whose school has not unlocked moduleID
func RequireModule(moduleID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return apperrors.ErrUnauthenticated()
			}
			if !principal.HasModule(moduleID) {
				return apperrors.ErrModuleLocked(moduleID)
			}
			return next(c)
		}
	}
}

// GetPrincipal retrieves the principal set by EchoAuth
func GetPrincipal(c echo.Context) (*entities.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(*entities.Principal)
	return p, ok && p != nil
}

// extractToken reads the Authorization header, falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
