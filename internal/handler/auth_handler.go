package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Accepts JSON or multipart/form-data with an optional "photo" file.
// @Tags user
// @Accept json,mpfd
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Param photo formData file false "Profile photo"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var (
		in    service.RegisterInput
		photo *multipart.FileHeader
	)

	if isMultipart(c) {
		form, err := readForm(c)
		if err != nil {
			return err
		}
		defer form.RemoveAll()

		f := newFormReader(form)
		in = service.RegisterInput{
			Name:     f.text("name"),
			Email:    f.text("email"),
			Password: f.text("password"),
			Phone:    f.text("phone"),
			Age:      deref(f.integer("age")),
			Location: f.text("location"),
			Gender:   f.text("gender"),
			Role:     f.text("role"),
		}
		if err := f.err(); err != nil {
			return err
		}
		photo = file(form, "photo")
	} else if err := bindJSON(c, &in); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), in, photo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "user registered successfully",
		User:    toUserResponse(user),
	})
}

// Login godoc
// @Summary Login user
// @Description Unknown emails and wrong passwords fail with the same response.
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the bearer token until it expires.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cl, err := claims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), cl); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// ChangePassword godoc
// @Summary Change password
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ChangePasswordInput true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}

	var in service.ChangePasswordInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.Request().Context(), u.ID, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated successfully"})
}
