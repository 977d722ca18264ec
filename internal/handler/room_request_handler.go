package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/query"
	"nestify/internal/service"
)

// RoomRequestHandler serves roommate-wanted endpoints.
type RoomRequestHandler struct {
	svc service.RoomRequestService
}

// NewRoomRequestHandler creates a room-request handler.
func NewRoomRequestHandler(svc service.RoomRequestService) *RoomRequestHandler {
	return &RoomRequestHandler{svc: svc}
}

// ListRoomRequests godoc
// @Summary List room requests
// @Tags room-request
// @Produce json
// @Param search query string false "Matches location"
// @Param sortBy query string false "newest or oldest"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} RoomRequestListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /room-request [get]
func (h *RoomRequestHandler) ListRoomRequests(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	reqs, total, err := h.svc.List(c.Request().Context(), c.QueryParam("search"), c.QueryParam("sortBy"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoomRequestListResponse{
		RoomRequests: toRoomRequestResponses(reqs),
		Pagination:   query.NewPagination(page, total),
	})
}

// MyRoomRequests godoc
// @Summary List own room requests
// @Tags room-request
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} RoomRequestListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /room-request/mine [get]
func (h *RoomRequestHandler) MyRoomRequests(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	reqs, total, err := h.svc.Mine(c.Request().Context(), u, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RoomRequestListResponse{
		RoomRequests: toRoomRequestResponses(reqs),
		Pagination:   query.NewPagination(page, total),
	})
}

// GetRoomRequest godoc
// @Summary Get room request by id
// @Tags room-request
// @Produce json
// @Param id path string true "Room request ID"
// @Success 200 {object} RoomRequestResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /room-request/{id} [get]
func (h *RoomRequestHandler) GetRoomRequest(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"), "room request")
	if err != nil {
		return err
	}
	req, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomRequestResponse(req))
}

// CreateRoomRequest godoc
// @Summary Create room request
// @Tags room-request
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RoomRequestInput true "Room request"
// @Success 201 {object} RoomRequestResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /room-request [post]
func (h *RoomRequestHandler) CreateRoomRequest(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	var in service.RoomRequestInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	req, err := h.svc.Create(c.Request().Context(), u, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoomRequestResponse(req))
}

// UpdateRoomRequest godoc
// @Summary Update room request
// @Tags room-request
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room request ID"
// @Param request body service.RoomRequestUpdateInput true "Fields to change"
// @Success 200 {object} RoomRequestResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /room-request/{id} [put]
func (h *RoomRequestHandler) UpdateRoomRequest(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "room request")
	if err != nil {
		return err
	}
	var in service.RoomRequestUpdateInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	req, err := h.svc.Update(c.Request().Context(), u, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomRequestResponse(req))
}

// DeleteRoomRequest godoc
// @Summary Delete room request
// @Tags room-request
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room request ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /room-request/{id} [delete]
func (h *RoomRequestHandler) DeleteRoomRequest(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "room request")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), u, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "room request deleted successfully"})
}
