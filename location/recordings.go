package location

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wwdtm/stats/internal/validation"
)

// RecordingCounts tallies the shows recorded at a location. Regular shows
// exclude Best Of and repeat shows.
type RecordingCounts struct {
	RegularShows int64 `json:"regular_shows"`
	AllShows     int64 `json:"all_shows"`
}

// Recording is one show recorded at a location.
type Recording struct {
	ShowID     int64  `json:"show_id"`
	Date       string `json:"date"`
	BestOf     bool   `json:"best_of"`
	RepeatShow bool   `json:"repeat_show"`
}

// RecordingInfo aggregates recording counts with the corresponding show
// rows. Shows is always non-nil.
type RecordingInfo struct {
	Count RecordingCounts `json:"count"`
	Shows []Recording     `json:"shows"`
}

// Recordings retrieves show recording information for locations.
type Recordings struct {
	db      *sql.DB
	utility *Utility
}

// NewRecordings constructs a Recordings service with the given DB handle.
func NewRecordings(db *sql.DB) *Recordings {
	return &Recordings{db: db, utility: NewUtility(db)}
}

// ByID returns recording counts and per-show rows for the requested location
// ID. Unknown or invalid IDs yield zero counts and an empty show list.
func (r *Recordings) ByID(ctx context.Context, id int64) (RecordingInfo, error) {
	info := RecordingInfo{Shows: []Recording{}}
	if !validation.ValidIntID(id) {
		return info, nil
	}

	const countQuery = `SELECT (
               SELECT COUNT(lm.showid) FROM ww_showlocationmap lm
               JOIN ww_shows s ON s.showid = lm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND lm.locationid = ? ) AS regular_shows, (
               SELECT COUNT(lm.showid) FROM ww_showlocationmap lm
               JOIN ww_shows s ON s.showid = lm.showid
               WHERE lm.locationid = ? ) AS all_shows`
	err := r.db.QueryRowContext(ctx, countQuery, id, id).
		Scan(&info.Count.RegularShows, &info.Count.AllShows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return RecordingInfo{}, err
	}

	const showQuery = `SELECT lm.showid, s.showdate, s.bestof, s.repeatshowid
               FROM ww_showlocationmap lm
               JOIN ww_locations l ON l.locationid = lm.locationid
               JOIN ww_shows s ON s.showid = lm.showid
               WHERE lm.locationid = ?
               ORDER BY s.showdate ASC`
	rows, err := r.db.QueryContext(ctx, showQuery, id)
	if err != nil {
		return RecordingInfo{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recording Recording
			date      time.Time
			bestOf    int64
			repeatOf  sql.NullInt64
		)
		if err := rows.Scan(&recording.ShowID, &date, &bestOf, &repeatOf); err != nil {
			return RecordingInfo{}, err
		}
		recording.Date = date.Format(time.DateOnly)
		recording.BestOf = bestOf != 0
		recording.RepeatShow = repeatOf.Valid
		info.Shows = append(info.Shows, recording)
	}
	return info, rows.Err()
}

// BySlug returns recording information for the requested location slug
// string.
func (r *Recordings) BySlug(ctx context.Context, locationSlug string) (RecordingInfo, error) {
	empty := RecordingInfo{Shows: []Recording{}}
	locationSlug = strings.TrimSpace(locationSlug)
	if locationSlug == "" {
		return empty, nil
	}

	id, err := r.utility.ConvertSlugToID(ctx, locationSlug)
	if err != nil {
		return RecordingInfo{}, err
	}
	if id == 0 {
		return empty, nil
	}
	return r.ByID(ctx, id)
}
