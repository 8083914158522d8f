package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/project-api/internal/core/ports"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and performs a fast-fail check before any service call: email must be
// non-empty (presence proves the middleware ran and the token carried a
// subject). The name and avatar claims are optional.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	firstName, _ := c.Get("first_name").(string)
	lastName, _ := c.Get("last_name").(string)
	avatar, _ := c.Get("avatar").(string)

	return ports.Identity{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Avatar:    avatar,
	}, nil
}
