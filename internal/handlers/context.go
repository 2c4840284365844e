package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/medetk/volunteerhub/backend/internal/authz"
	"github.com/medetk/volunteerhub/backend/internal/models"
	"github.com/medetk/volunteerhub/backend/internal/repositories"
)

// currentUser resolves the authenticated actor from the JWT claims placed in
// the context by the auth middleware. The user is re-read from the store so
// role and approval changes take effect without a fresh login.
func currentUser(c echo.Context, userRepo repositories.UserRepository) (*models.User, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
	}
	return user, nil
}

// denied maps an authorization denial to 403 with the denial reason.
func denied(err error) error {
	if d, ok := err.(*authz.DeniedError); ok {
		return echo.NewHTTPError(http.StatusForbidden, d.Reason)
	}
	return echo.NewHTTPError(http.StatusForbidden, err.Error())
}
