package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/guest"
)

// GuestHandler serves Not My Job guest endpoints.
type GuestHandler struct {
	Guest *guest.Guest
}

// List returns the basic record for every guest.
func (h *GuestHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	guests, err := h.Guest.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": guests})
}

// ListDetails returns the detail record for every guest.
func (h *GuestHandler) ListDetails(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Guest.AllDetails(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetByID returns the basic record for one guest ID.
func (h *GuestHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Guest.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one guest ID.
func (h *GuestHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Guest.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBySlug returns the basic record for one guest slug string.
func (h *GuestHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Guest.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsBySlug returns the detail record for one guest slug string.
func (h *GuestHandler) GetDetailsBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Guest.DetailsBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetRandom returns the basic record for a randomly selected guest.
func (h *GuestHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Guest.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no guests on file"})
	}
	return c.JSON(http.StatusOK, info)
}
