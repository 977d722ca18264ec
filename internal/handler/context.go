package handler

import (
	"github.com/labstack/echo/v4"

	"nestify/internal/auth"
	apperrors "nestify/internal/errors"
	"nestify/internal/model"
	"nestify/internal/query"
)

// Context keys set by the authentication middleware.
const (
	ActorKey  = "actor"
	ClaimsKey = "claims"
)

// actor returns the authenticated user, or Unauthorized when the route was
// reached without one.
func actor(c echo.Context) (*model.User, error) {
	u, ok := c.Get(ActorKey).(*model.User)
	if !ok || u == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return u, nil
}

func claims(c echo.Context) (*auth.Claims, error) {
	cl, ok := c.Get(ClaimsKey).(*auth.Claims)
	if !ok || cl == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return cl, nil
}

func pageParams(c echo.Context) (query.Page, error) {
	return query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
}

// bindJSON binds the request body and reports malformed bodies as validation errors.
func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, "invalid request body", err)
	}
	return nil
}
