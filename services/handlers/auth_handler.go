package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

// @Summary Admin login
// @Description Check the admin credentials, set the auth_token cookie and return the same token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} shared.ErrorResponse
// @Failure 401 {object} shared.ErrorResponse
// @Failure 429 {object} shared.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := dto.ParseLogin(c.Body())
	if err != nil {
		return err
	}

	token, err := h.authSvc.Authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     shared.AuthCookieName,
		Value:    token.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.authSvc.SessionTTL()),
		HTTPOnly: true,
		Secure:   h.authSvc.CookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return shared.ResponseOK(c, dto.LoginResponse{Token: token.Token})
}

// @Summary Session status
// @Description Report whether the auth_token cookie (or bearer token) is a valid admin session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionStatusResponse
// @Failure 401 {object} dto.SessionStatusResponse
// @Router /api/v1/auth/login [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	if !h.authSvc.IsAuthenticated(c) {
		return shared.ResponseJSON(c, fiber.StatusUnauthorized, dto.SessionStatusResponse{Authenticated: false})
	}
	return shared.ResponseOK(c, dto.SessionStatusResponse{Authenticated: true})
}

// @Summary Admin logout
// @Description Clear the auth_token cookie. Issued tokens stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} shared.SuccessResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     shared.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.authSvc.CookieSecure(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return shared.ResponseSuccess(c, "Logged out")
}
