package guest

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wwdtm/stats/internal/validation"
)

// AppearanceCounts tallies a guest's show appearances. Regular shows exclude
// Best Of and repeat shows.
type AppearanceCounts struct {
	RegularShows int64 `json:"regular_shows"`
	AllShows     int64 `json:"all_shows"`
}

// Appearance is one show appearance for a guest. Score is nil when no score
// was recorded for the appearance.
type Appearance struct {
	ShowID         int64  `json:"show_id"`
	Date           string `json:"date"`
	BestOf         bool   `json:"best_of"`
	RepeatShow     bool   `json:"repeat_show"`
	Score          *int64 `json:"score"`
	ScoreException bool   `json:"score_exception"`
}

// AppearanceInfo aggregates appearance counts with the corresponding show
// rows. Shows is always non-nil.
type AppearanceInfo struct {
	Count AppearanceCounts `json:"count"`
	Shows []Appearance     `json:"shows"`
}

// Appearances retrieves guest appearance information.
type Appearances struct {
	db      *sql.DB
	utility *Utility
}

// NewAppearances constructs an Appearances service with the given DB handle.
func NewAppearances(db *sql.DB) *Appearances {
	return &Appearances{db: db, utility: NewUtility(db)}
}

// ByID returns appearance counts and per-show appearance rows for the
// requested guest ID. Unknown or invalid IDs yield zero counts and an empty
// show list.
func (a *Appearances) ByID(ctx context.Context, id int64) (AppearanceInfo, error) {
	info := AppearanceInfo{Shows: []Appearance{}}
	if !validation.ValidIntID(id) {
		return info, nil
	}

	const countQuery = `SELECT (
               SELECT COUNT(gm.showid) FROM ww_showguestmap gm
               JOIN ww_shows s ON s.showid = gm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND gm.guestid = ? ) AS regular_shows, (
               SELECT COUNT(gm.showid) FROM ww_showguestmap gm
               JOIN ww_shows s ON s.showid = gm.showid
               WHERE gm.guestid = ? ) AS all_shows`
	err := a.db.QueryRowContext(ctx, countQuery, id, id).
		Scan(&info.Count.RegularShows, &info.Count.AllShows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AppearanceInfo{}, err
	}

	const showQuery = `SELECT gm.showid, s.showdate, s.bestof, s.repeatshowid,
               gm.guestscore, gm.exception
               FROM ww_showguestmap gm
               JOIN ww_guests g ON g.guestid = gm.guestid
               JOIN ww_shows s ON s.showid = gm.showid
               WHERE gm.guestid = ?
               ORDER BY s.showdate ASC`
	rows, err := a.db.QueryContext(ctx, showQuery, id)
	if err != nil {
		return AppearanceInfo{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appearance Appearance
			date       time.Time
			bestOf     int64
			repeatOf   sql.NullInt64
			score      sql.NullInt64
			exception  sql.NullInt64
		)
		if err := rows.Scan(&appearance.ShowID, &date, &bestOf, &repeatOf,
			&score, &exception); err != nil {
			return AppearanceInfo{}, err
		}
		appearance.Date = date.Format(time.DateOnly)
		appearance.BestOf = bestOf != 0
		appearance.RepeatShow = repeatOf.Valid
		if score.Valid {
			appearance.Score = &score.Int64
		}
		appearance.ScoreException = exception.Valid && exception.Int64 != 0
		info.Shows = append(info.Shows, appearance)
	}
	return info, rows.Err()
}

// BySlug returns appearance information for the requested guest slug string.
func (a *Appearances) BySlug(ctx context.Context, guestSlug string) (AppearanceInfo, error) {
	empty := AppearanceInfo{Shows: []Appearance{}}
	guestSlug = strings.TrimSpace(guestSlug)
	if guestSlug == "" {
		return empty, nil
	}

	id, err := a.utility.ConvertSlugToID(ctx, guestSlug)
	if err != nil {
		return AppearanceInfo{}, err
	}
	if id == 0 {
		return empty, nil
	}
	return a.ByID(ctx, id)
}
