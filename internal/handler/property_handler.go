package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"nestify/internal/query"
	"nestify/internal/service"
)

// PropertyHandler serves rental listing endpoints.
type PropertyHandler struct {
	svc service.PropertyService
}

// NewPropertyHandler creates a property handler.
func NewPropertyHandler(svc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// ListProperties godoc
// @Summary List active properties
// @Tags property
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Param sortBy query string false "price_asc, price_desc, popular, newest or oldest"
// @Success 200 {object} PropertyListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /property [get]
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	return h.search(c, service.PropertyQuery{SortBy: c.QueryParam("sortBy")})
}

// SearchProperties godoc
// @Summary Search active properties
// @Tags property
// @Produce json
// @Param search query string false "Matches title, city, location or property type"
// @Param propertyType query string false "Apartment, Independent House, Villa, PG, Studio or Penthouse"
// @Param city query string false "City (case-insensitive)"
// @Param bhkType query string false "1RK, 1BHK, 2BHK, 3BHK, 4BHK or 5BHK+"
// @Param priceRange query string false "min-max or min+"
// @Param sortBy query string false "price_asc, price_desc, popular, newest or oldest"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} PropertyListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /property/search [get]
func (h *PropertyHandler) SearchProperties(c echo.Context) error {
	return h.search(c, service.PropertyQuery{
		Search:       c.QueryParam("search"),
		PropertyType: c.QueryParam("propertyType"),
		City:         c.QueryParam("city"),
		BHKType:      c.QueryParam("bhkType"),
		PriceRange:   c.QueryParam("priceRange"),
		SortBy:       c.QueryParam("sortBy"),
	})
}

func (h *PropertyHandler) search(c echo.Context, q service.PropertyQuery) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	properties, total, err := h.svc.Search(c.Request().Context(), q, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PropertyListResponse{
		Properties: toPropertyResponses(properties),
		Pagination: query.NewPagination(page, total),
	})
}

// MyProperties godoc
// @Summary List own properties
// @Description Broker and owner dashboard; includes inactive listings.
// @Tags property
// @Produce json
// @Security BearerAuth
// @Param sortBy query string false "price_asc, price_desc, popular, newest or oldest"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} PropertyListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /property/mine [get]
func (h *PropertyHandler) MyProperties(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	properties, total, err := h.svc.Mine(c.Request().Context(), u, c.QueryParam("sortBy"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PropertyListResponse{
		Properties: toPropertyResponses(properties),
		Pagination: query.NewPagination(page, total),
	})
}

// GetProperty godoc
// @Summary Get property by id
// @Description Each read counts as a view.
// @Tags property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} PropertyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /property/{id} [get]
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id, err := service.ParseID(c.Param("id"), "property")
	if err != nil {
		return err
	}
	property, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// CreateProperty godoc
// @Summary Create property
// @Description Accepts JSON or multipart/form-data with "images[]" files.
// @Tags property
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body service.PropertyInput true "Listing"
// @Param images formData file false "Listing images"
// @Success 201 {object} PropertyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /property [post]
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}

	var (
		in     service.PropertyInput
		images []*multipart.FileHeader
	)
	if isMultipart(c) {
		form, err := readForm(c)
		if err != nil {
			return err
		}
		defer form.RemoveAll()

		f := newFormReader(form)
		in = service.PropertyInput{
			Title:        f.text("title"),
			Description:  f.text("description"),
			City:         f.text("city"),
			Location:     f.text("location"),
			Rent:         deref(f.dec("rent")),
			Deposit:      deref(f.dec("deposit")),
			Area:         deref(f.integer("area")),
			PropertyType: f.text("propertyType"),
			NoOfBedroom:  deref(f.integer("noOfBedroom")),
			Bathrooms:    deref(f.integer("bathrooms")),
			BHKType:      f.text("bhkType"),
			Amenities:    f.list("amenities"),
			AllowBroker:  deref(f.boolean("allowBroker")),
		}
		if err := f.err(); err != nil {
			return err
		}
		images = files(form, "images")
	} else if err := bindJSON(c, &in); err != nil {
		return err
	}

	property, err := h.svc.Create(c.Request().Context(), u, in, images)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPropertyResponse(property))
}

// UpdateProperty godoc
// @Summary Update property
// @Description Partial update by the owner or an admin. New "images[]" are appended; URLs in "removeImages[]" are dropped.
// @Tags property
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body service.PropertyUpdateInput true "Fields to change"
// @Param images formData file false "Images to append"
// @Success 200 {object} PropertyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /property/{id} [put]
func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "property")
	if err != nil {
		return err
	}

	var (
		in     service.PropertyUpdateInput
		images []*multipart.FileHeader
	)
	if isMultipart(c) {
		form, err := readForm(c)
		if err != nil {
			return err
		}
		defer form.RemoveAll()

		f := newFormReader(form)
		in = service.PropertyUpdateInput{
			Title:        f.str("title"),
			Description:  f.str("description"),
			City:         f.str("city"),
			Location:     f.str("location"),
			Rent:         f.dec("rent"),
			Deposit:      f.dec("deposit"),
			Area:         f.integer("area"),
			PropertyType: f.str("propertyType"),
			NoOfBedroom:  f.integer("noOfBedroom"),
			Bathrooms:    f.integer("bathrooms"),
			BHKType:      f.str("bhkType"),
			AllowBroker:  f.boolean("allowBroker"),
			Status:       f.str("status"),
			RemoveImages: f.list("removeImages"),
		}
		if amenities := f.list("amenities"); amenities != nil {
			in.Amenities = &amenities
		}
		if err := f.err(); err != nil {
			return err
		}
		images = files(form, "images")
	} else if err := bindJSON(c, &in); err != nil {
		return err
	}

	property, err := h.svc.Update(c.Request().Context(), u, id, in, images)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// DeleteProperty godoc
// @Summary Delete property
// @Description Owner or admin only. Images are released from the media host first.
// @Tags property
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /property/{id} [delete]
func (h *PropertyHandler) DeleteProperty(c echo.Context) error {
	u, err := actor(c)
	if err != nil {
		return err
	}
	id, err := service.ParseID(c.Param("id"), "property")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), u, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "property deleted successfully"})
}
