package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/momsgrove/grove-api/errors"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

type fakeAuth struct {
	principals map[string]*entities.Principal
	err        error
}

func (f fakeAuth) Authenticate(_ context.Context, token string) (*entities.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.principals[token]
	if !ok {
		return nil, entities.ErrInvalidToken
	}
	return p, nil
}

func run(t *testing.T, req *http.Request, chain ...echo.MiddlewareFunc) (bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusNoContent)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	err := h(c)
	return reached, err
}

func appCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestEchoAuth(t *testing.T) {
	schoolID := uuid.New()
	admin := &entities.Principal{UserID: uuid.New(), Role: entities.RoleAdmin, SchoolID: &schoolID,
		UnlockedModules: []string{entities.ModuleFinancials}}
	auth := fakeAuth{principals: map[string]*entities.Principal{"good": admin}}

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		reached, err := run(t, req, EchoAuth(auth))
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good"})
		reached, err := run(t, req, EchoAuth(auth))
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("missing token", func(t *testing.T) {
		reached, err := run(t, httptest.NewRequest(http.MethodGet, "/", nil), EchoAuth(auth))
		assert.False(t, reached)
		assert.Equal(t, apperrors.ErrorCode_UNAUTHENTICATED, appCode(t, err))
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
		reached, err := run(t, req, EchoAuth(auth))
		assert.False(t, reached)
		assert.Equal(t, apperrors.ErrorCode_AUTH_INVALID_TOKEN, appCode(t, err))
	})

	t.Run("inactive user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		_, err := run(t, req, EchoAuth(fakeAuth{err: entities.ErrUserInactive}))
		assert.Equal(t, apperrors.ErrorCode_AUTH_USER_INACTIVE, appCode(t, err))
	})

	t.Run("role gate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		reached, err := run(t, req, EchoAuth(auth), RequireRole(entities.RoleTeacher))
		assert.False(t, reached)
		assert.Equal(t, apperrors.ErrorCode_PERMISSION_DENIED, appCode(t, err))

		reached, err = run(t, req, EchoAuth(auth), RequireRole(entities.RoleTeacher, entities.RoleAdmin))
		require.NoError(t, err)
		assert.True(t, reached)
	})

	t.Run("module gate", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")

		reached, err := run(t, req, EchoAuth(auth), RequireModule(entities.ModuleFinancials))
		require.NoError(t, err)
		assert.True(t, reached)

		reached, err = run(t, req, EchoAuth(auth), RequireModule(entities.ModuleAICopilot))
		assert.False(t, reached)
		assert.Equal(t, apperrors.ErrorCode_MODULE_LOCKED, appCode(t, err))
	})

	t.Run("gates without auth", func(t *testing.T) {
		_, err := run(t, httptest.NewRequest(http.MethodGet, "/", nil), RequireRole(entities.RoleAdmin))
		assert.Equal(t, apperrors.ErrorCode_UNAUTHENTICATED, appCode(t, err))
	})
}
