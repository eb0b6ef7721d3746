package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/scorekeeper"
)

// ScorekeeperHandler serves scorekeeper endpoints.
type ScorekeeperHandler struct {
	Scorekeeper *scorekeeper.Scorekeeper
}

// List returns the basic record for every scorekeeper.
func (h *ScorekeeperHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	scorekeepers, err := h.Scorekeeper.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": scorekeepers})
}

// ListDetails returns the detail record for every scorekeeper.
func (h *ScorekeeperHandler) ListDetails(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Scorekeeper.AllDetails(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetByID returns the basic record for one scorekeeper ID.
func (h *ScorekeeperHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Scorekeeper.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scorekeeper not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one scorekeeper ID.
func (h *ScorekeeperHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Scorekeeper.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scorekeeper not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBySlug returns the basic record for one scorekeeper slug string.
func (h *ScorekeeperHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Scorekeeper.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scorekeeper not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsBySlug returns the detail record for one scorekeeper slug
// string.
func (h *ScorekeeperHandler) GetDetailsBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Scorekeeper.DetailsBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scorekeeper not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetRandom returns the basic record for a randomly selected scorekeeper.
func (h *ScorekeeperHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Scorekeeper.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no scorekeepers on file"})
	}
	return c.JSON(http.StatusOK, info)
}
