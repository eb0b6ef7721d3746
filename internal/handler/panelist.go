package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/panelist"
)

// PanelistHandler serves panelist endpoints, including scoring statistics.
type PanelistHandler struct {
	Panelist *panelist.Panelist
}

// List returns the basic record for every panelist.
func (h *PanelistHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	panelists, err := h.Panelist.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": panelists})
}

// ListDetails returns the detail record for every panelist.
func (h *PanelistHandler) ListDetails(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Panelist.AllDetails(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetByID returns the basic record for one panelist ID.
func (h *PanelistHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Panelist.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "panelist not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one panelist ID.
func (h *PanelistHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Panelist.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "panelist not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetBySlug returns the basic record for one panelist slug string.
func (h *PanelistHandler) GetBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Panelist.BySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "panelist not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsBySlug returns the detail record for one panelist slug string.
func (h *PanelistHandler) GetDetailsBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Panelist.DetailsBySlug(ctx, c.Param("slug"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "panelist not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetStatisticsByID returns scoring and ranking statistics for one panelist
// ID.
func (h *PanelistHandler) GetStatisticsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	statistics, err := h.Panelist.Statistics.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if statistics == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no statistics on file"})
	}
	return c.JSON(http.StatusOK, statistics)
}

// GetScoresByID returns show date and score pairs for one panelist ID.
func (h *PanelistHandler) GetScoresByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	scores, err := h.Panelist.Scores.OrderedPairByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": scores})
}

// GetRandom returns the basic record for a randomly selected panelist.
func (h *PanelistHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Panelist.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no panelists on file"})
	}
	return c.JSON(http.StatusOK, info)
}
