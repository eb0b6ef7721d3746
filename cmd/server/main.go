// Command server exposes the Wait Wait Stats retrieval services over a
// read-only HTTP API.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/wwdtm/stats/guest"
	"github.com/wwdtm/stats/host"
	"github.com/wwdtm/stats/internal/config"
	"github.com/wwdtm/stats/internal/database"
	"github.com/wwdtm/stats/internal/handler"
	"github.com/wwdtm/stats/internal/router"
	"github.com/wwdtm/stats/location"
	"github.com/wwdtm/stats/panelist"
	"github.com/wwdtm/stats/pronoun"
	"github.com/wwdtm/stats/scorekeeper"
	"github.com/wwdtm/stats/show"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	// .env is optional; real deployments set variables directly.
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, using environment")
	}

	cfg := config.Load()

	db, err := database.Open(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Name:     cfg.DBName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterGuests(e, &handler.GuestHandler{Guest: guest.New(db)})
	router.RegisterHosts(e, &handler.HostHandler{Host: host.New(db)})
	router.RegisterLocations(e, &handler.LocationHandler{Location: location.New(db)})
	router.RegisterPanelists(e, &handler.PanelistHandler{
		Panelist: panelist.New(db, cfg.UseDecimalScores),
	})
	router.RegisterPronouns(e, &handler.PronounHandler{Pronouns: pronoun.New(db)})
	router.RegisterScorekeepers(e, &handler.ScorekeeperHandler{
		Scorekeeper: scorekeeper.New(db),
	})
	router.RegisterShows(e, &handler.ShowHandler{
		Show: show.New(db, cfg.UseDecimalScores),
	})

	addr := ":" + cfg.Port
	logger.Info().
		Str("addr", addr).
		Str("env", cfg.Env).
		Bool("decimal_scores", cfg.UseDecimalScores).
		Msg("starting server")

	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
