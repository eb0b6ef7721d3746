package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/location"
)

// LocationHandler serves recording location endpoints. List endpoints
// accept a sort=venue query parameter to order by venue instead of the
// default state, city and venue ordering.
type LocationHandler struct {
	Location *location.Location
}

func sortByVenue(c echo.Context) bool {
	return c.QueryParam("sort") == "venue"
}

// List returns the basic record for every location.
func (h *LocationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	locations, err := h.Location.All(ctx, sortByVenue(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": locations})
}

// ListDetails returns the detail record for every location.
func (h *LocationHandler) ListDetails(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Location.AllDetails(ctx, sortByVenue(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetByID returns the basic record for one location ID.
func (h *LocationHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Location.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one location ID.
func (h *LocationHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Location.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBySlug returns the basic record for one location slug string.
func (h *LocationHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Location.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsBySlug returns the detail record for one location slug string.
func (h *LocationHandler) GetDetailsBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Location.DetailsBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetRandom returns the basic record for a randomly selected location.
func (h *LocationHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Location.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no locations on file"})
	}
	return c.JSON(http.StatusOK, info)
}
