package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/show"
)

// ShowHandler serves show endpoints, including date-based lookups.
type ShowHandler struct {
	Show *show.Show
}

// List returns the basic record for every show.
func (h *ShowHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	shows, err := h.Show.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// GetByID returns the basic record for one show ID.
func (h *ShowHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Show.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByID returns the detail record for one show ID.
func (h *ShowHandler) GetDetailsByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Show.DetailsByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// GetByDate returns the basic record for the show that aired on the
// requested date, formatted as YYYY-MM-DD.
func (h *ShowHandler) GetByDate(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Show.ByDateString(ctx, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, info)
}

// GetDetailsByDate returns the detail record for the show that aired on the
// requested date, formatted as YYYY-MM-DD.
func (h *ShowHandler) GetDetailsByDate(c echo.Context) error {
	ctx := c.Request().Context()
	details, err := h.Show.DetailsByDateString(ctx, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, details)
}

// ListByYear returns the basic record for every show in the requested year.
func (h *ShowHandler) ListByYear(c echo.Context) error {
	ctx := c.Request().Context()
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	shows, err := h.Show.ByYear(ctx, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// ListByYearMonth returns the basic record for every show in the requested
// year and month.
func (h *ShowHandler) ListByYearMonth(c echo.Context) error {
	ctx := c.Request().Context()
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid month"})
	}
	shows, err := h.Show.ByYearMonth(ctx, year, month)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// ListRecent returns the basic record for shows within the recent window.
func (h *ShowHandler) ListRecent(c echo.Context) error {
	ctx := c.Request().Context()
	shows, err := h.Show.Recent(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": shows})
}

// ListScoresByYear returns per-show panelist scores for the requested year.
func (h *ShowHandler) ListScoresByYear(c echo.Context) error {
	ctx := c.Request().Context()
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid year"})
	}
	scores, err := h.Show.ScoresByYear(ctx, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": scores})
}

// ListYears returns every year with at least one show.
func (h *ShowHandler) ListYears(c echo.Context) error {
	ctx := c.Request().Context()
	years, err := h.Show.Years(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": years})
}

// GetRandom returns the basic record for a randomly selected show.
func (h *ShowHandler) GetRandom(c echo.Context) error {
	ctx := c.Request().Context()
	info, err := h.Show.Random(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no shows on file"})
	}
	return c.JSON(http.StatusOK, info)
}
