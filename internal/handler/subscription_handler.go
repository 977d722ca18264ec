package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/model"
	"nestify/internal/service"
)

// SubscriptionHandler serves the premium subscription endpoints.
type SubscriptionHandler struct {
	svc service.SubscriptionService
}

// NewSubscriptionHandler creates a subscription handler.
func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Status godoc
// @Summary Subscription status
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SubscriptionStatus
// @Failure 401 {object} errors.ErrorResponse
// @Router /subscription/status [get]
func (h *SubscriptionHandler) Status(c echo.Context) error {
	return h.respond(c, h.svc.Status)
}

// Purchase godoc
// @Summary Purchase subscription
// @Description Activates the subscription for the configured period. No payment is taken.
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SubscriptionStatus
// @Failure 401 {object} errors.ErrorResponse
// @Router /subscription/purchase [post]
func (h *SubscriptionHandler) Purchase(c echo.Context) error {
	return h.respond(c, h.svc.Purchase)
}

// Cancel godoc
// @Summary Cancel subscription
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SubscriptionStatus
// @Failure 401 {object} errors.ErrorResponse
// @Router /subscription/cancel [post]
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	return h.respond(c, h.svc.Cancel)
}

type subscriptionOp func(ctx context.Context, actor *model.User) (*service.SubscriptionStatus, error)

func (h *SubscriptionHandler) respond(c echo.Context, op subscriptionOp) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	status, err := op(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
