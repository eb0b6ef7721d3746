// Package router wires the read-only HTTP endpoints onto an Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wwdtm/stats/internal/handler"
)

// RegisterRoutes registers the health check endpoint on the provided Echo
// instance. Load balancers and monitoring systems use it to verify the
// service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterGuests registers Not My Job guest endpoints under /v1/guests.
func RegisterGuests(e *echo.Echo, h *handler.GuestHandler) {
	g := e.Group("/v1/guests")
	g.GET("", h.List)
	g.GET("/details", h.ListDetails)
	g.GET("/random", h.GetRandom)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/slug/:slug/details", h.GetDetailsBySlug)
}

// RegisterHosts registers host endpoints under /v1/hosts.
func RegisterHosts(e *echo.Echo, h *handler.HostHandler) {
	g := e.Group("/v1/hosts")
	g.GET("", h.List)
	g.GET("/details", h.ListDetails)
	g.GET("/random", h.GetRandom)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/slug/:slug/details", h.GetDetailsBySlug)
}

// RegisterLocations registers recording location endpoints under
// /v1/locations.
func RegisterLocations(e *echo.Echo, h *handler.LocationHandler) {
	g := e.Group("/v1/locations")
	g.GET("", h.List)
	g.GET("/details", h.ListDetails)
	g.GET("/random", h.GetRandom)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/slug/:slug/details", h.GetDetailsBySlug)
}

// RegisterPanelists registers panelist endpoints under /v1/panelists.
func RegisterPanelists(e *echo.Echo, h *handler.PanelistHandler) {
	g := e.Group("/v1/panelists")
	g.GET("", h.List)
	g.GET("/details", h.ListDetails)
	g.GET("/random", h.GetRandom)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/:id/statistics", h.GetStatisticsByID)
	g.GET("/:id/scores", h.GetScoresByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/slug/:slug/details", h.GetDetailsBySlug)
}

// RegisterPronouns registers pronoun reference endpoints under /v1/pronouns.
func RegisterPronouns(e *echo.Echo, h *handler.PronounHandler) {
	g := e.Group("/v1/pronouns")
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
}

// RegisterScorekeepers registers scorekeeper endpoints under
// /v1/scorekeepers.
func RegisterScorekeepers(e *echo.Echo, h *handler.ScorekeeperHandler) {
	g := e.Group("/v1/scorekeepers")
	g.GET("", h.List)
	g.GET("/details", h.ListDetails)
	g.GET("/random", h.GetRandom)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/slug/:slug", h.GetBySlug)
	g.GET("/slug/:slug/details", h.GetDetailsBySlug)
}

// RegisterShows registers show endpoints under /v1/shows. Date-based
// lookups take dates formatted as YYYY-MM-DD.
func RegisterShows(e *echo.Echo, h *handler.ShowHandler) {
	g := e.Group("/v1/shows")
	g.GET("", h.List)
	g.GET("/recent", h.ListRecent)
	g.GET("/random", h.GetRandom)
	g.GET("/years", h.ListYears)
	g.GET("/:id", h.GetByID)
	g.GET("/:id/details", h.GetDetailsByID)
	g.GET("/date/:date", h.GetByDate)
	g.GET("/date/:date/details", h.GetDetailsByDate)
	g.GET("/year/:year", h.ListByYear)
	g.GET("/year/:year/month/:month", h.ListByYearMonth)
	g.GET("/year/:year/scores", h.ListScoresByYear)
}
