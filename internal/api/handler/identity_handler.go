package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/midas-hq/midas/internal/auth"
	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

// IdentityHandler serves signup, login, and the published key set.
type IdentityHandler struct {
	service ports.IdentityService
	keys    *auth.KeyMaterial
}

func NewIdentityHandler(service ports.IdentityService, keys *auth.KeyMaterial) *IdentityHandler {
	return &IdentityHandler{service: service, keys: keys}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type signupResponse struct {
	ID    string       `json:"id"`
	Email string       `json:"email"`
	Roles domain.Roles `json:"roles"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Signup creates a new account.
//
// @Summary      Register a new account
// @Tags         identity
// @Accept       json
// @Produce      json
// @Success      201  {object}  signupResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /signup [post]
func (h *IdentityHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email_password_required")
	}

	user, err := h.service.Signup(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{ID: user.ID, Email: user.Email, Roles: user.Roles})
}

// Login authenticates credentials and returns a signed bearer token.
//
// @Summary      Login
// @Tags         identity
// @Accept       json
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *IdentityHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid_payload")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email_password_required")
	}

	token, expiresIn, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn.Seconds()),
	})
}

// JWKS publishes the verification keys for this issuer.
func (h *IdentityHandler) JWKS(c echo.Context) error {
	return c.JSON(http.StatusOK, h.keys.JWKS())
}
