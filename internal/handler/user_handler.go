package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/query"
	"nestify/internal/service"
)

// UserHandler serves profile and user administration endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Profile(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Partial update. Accepts JSON or multipart/form-data with an optional "photo" file.
// @Tags user
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body service.UpdateProfileInput true "Fields to change"
// @Param photo formData file false "New profile photo"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}

	var (
		in    service.UpdateProfileInput
		photo *multipart.FileHeader
	)
	if isMultipart(c) {
		form, err := readForm(c)
		if err != nil {
			return err
		}
		defer form.RemoveAll()

		f := newFormReader(form)
		in = service.UpdateProfileInput{
			Name:     f.str("name"),
			Email:    f.str("email"),
			Password: f.str("password"),
			Phone:    f.str("phone"),
			Age:      f.integer("age"),
			Location: f.str("location"),
			Gender:   f.str("gender"),
		}
		if err := f.err(); err != nil {
			return err
		}
		photo = file(form, "photo")
	} else if err := bindJSON(c, &in); err != nil {
		return err
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), u, in, photo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param query query string false "Search name, email or location"
// @Param role query string false "user or broker"
// @Param isAdmin query bool false "Admin flag"
// @Param gender query string false "male, female or other"
// @Param sortBy query string false "newest or oldest"
// @Success 200 {object} UserListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /user/all [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	search := c.QueryParam("query")
	if search == "" {
		search = c.QueryParam("search")
	}
	users, total, err := h.svc.List(c.Request().Context(), u, service.UserQuery{
		Search:  search,
		Role:    c.QueryParam("role"),
		Gender:  c.QueryParam("gender"),
		IsAdmin: c.QueryParam("isAdmin"),
		SortBy:  c.QueryParam("sortBy"),
	}, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserListResponse{
		Users:      toUserResponses(users),
		Pagination: query.NewPagination(page, total),
	})
}

// GetUser godoc
// @Summary Get user by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "user")
	if err != nil {
		return err
	}
	user, err := h.svc.Get(c.Request().Context(), u, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser godoc
// @Summary Update a user as admin
// @Description May change role and admin flag, never the password.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body service.AdminUpdateInput true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "user")
	if err != nil {
		return err
	}

	var in service.AdminUpdateInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	user, err := h.svc.AdminUpdate(c.Request().Context(), u, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user as admin
// @Description The user's listings and requests are kept and show an "Unknown" owner.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "user")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), u, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "user deleted successfully"})
}
