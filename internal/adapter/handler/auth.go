package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/momsgrove/grove-api/internal/adapter/dto/auth"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/usecase/auth"
)

const accessTokenCookie = "access_token"

// Auth handles authentication HTTP requests
type Auth struct {
	authService  *auth.Service
	logger       *zap.Logger
	secureCookie bool
}

// NewAuth creates a new auth handler. secureCookie marks the access token
// cookie as HTTPS-only.
func NewAuth(authService *auth.Service, logger *zap.Logger, secureCookie bool) *Auth {
	return &Auth{
		authService:  authService,
		logger:       logger,
		secureCookie: secureCookie,
	}
}

// Login handles POST /v1/auth/login
// @Summary      Log in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.LoginRequest  true  "Credentials"
// @Success      200      {object}  common.SuccessResponse{data=authDTO.AuthResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Failure      401      {object}  common.ErrorResponse  "Invalid email or password"
// @Failure      403      {object}  common.ErrorResponse  "User account is not active"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     accessTokenCookie,
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(result.ExpiresIn),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(result))
}

// Logout handles POST /v1/auth/logout. Tokens are stateless so this only
// clears the cookie.
// @Summary      Clear the access token cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:   accessTokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	return HandleSuccess(h.logger, c, nil)
}

// Me handles GET /v1/auth/me
// @Summary      Current user profile
// @Description  Returns the caller's profile, landing page and unlocked modules
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=authDTO.MeResponse}
// @Failure      401  {object}  common.ErrorResponse  "Not authenticated"
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	user, err := h.authService.Profile(c.Request().Context(), principal)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeResponse(user, principal))
}
