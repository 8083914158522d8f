package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/project-api/internal/core/domain"
	"github.com/taskhive/project-api/internal/core/ports"
)

// MeHandler serves the authenticated caller's own profile and the user
// directory search backing the member picker.
type MeHandler struct {
	authService ports.AuthService
}

func NewMeHandler(authService ports.AuthService) *MeHandler {
	return &MeHandler{authService: authService}
}

type searchUsersResponse struct {
	Users []*domain.User `json:"users"`
}

// Profile returns the caller's canonical user record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/me [get]
func (h *MeHandler) Profile(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Profile(c.Request().Context(), identity.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Search finds users by email or name fragment.
//
// @Summary      Search users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search fragment (email or name)"
// @Success      200  {object}  searchUsersResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/search [get]
func (h *MeHandler) Search(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	users, err := h.authService.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchUsersResponse{Users: users})
}
