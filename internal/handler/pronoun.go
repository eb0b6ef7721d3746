package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/pronoun"
)

// PronounHandler serves pronoun reference endpoints.
type PronounHandler struct {
	Pronouns *pronoun.Pronouns
}

// List returns every pronouns record.
func (h *PronounHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	infos, err := h.Pronouns.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": infos})
}

// GetByID returns one pronouns record by ID.
func (h *PronounHandler) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	info, err := h.Pronouns.ByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if info == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pronouns not found"})
	}
	return c.JSON(http.StatusOK, info)
}
