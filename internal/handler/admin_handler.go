package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/service"
)

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	svc service.AdminService
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	stats, err := h.svc.Stats(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
