package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/host"
)

// HostHandler serves show host endpoints.
type HostHandler struct {
	Host *host.Host
}

// List returns the basic record for every host.
func (h *HostHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	hosts, err := h.Host.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hosts})
}

// ListDetails returns the detail record for every host.
func (h *HostHandler) ListDetails(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Host.AllDetails(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetByID returns the basic record for one host ID.
func (h *HostHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Host.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "host not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one host ID.
func (h *HostHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Host.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "host not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBySlug returns the basic record for one host slug string.
func (h *HostHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Host.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "host not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsBySlug returns the detail record for one host slug string.
func (h *HostHandler) GetDetailsBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Host.DetailsBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "host not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetRandom returns the basic record for a randomly selected host.
func (h *HostHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Host.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no hosts on file"})
	}
	return c.JSON(http.StatusOK, info)
}
