package host

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wwdtm/stats/internal/validation"
)

// AppearanceCounts tallies a host's show appearances. Regular shows exclude
// Best Of and repeat shows.
type AppearanceCounts struct {
	RegularShows int64 `json:"regular_shows"`
	AllShows     int64 `json:"all_shows"`
}

// Appearance is one show appearance for a host. Guest is set when the host
// filled in as a guest host for that show.
type Appearance struct {
	ShowID     int64  `json:"show_id"`
	Date       string `json:"date"`
	BestOf     bool   `json:"best_of"`
	RepeatShow bool   `json:"repeat_show"`
	Guest      bool   `json:"guest"`
}

// AppearanceInfo aggregates appearance counts with the corresponding show
// rows. Shows is always non-nil.
type AppearanceInfo struct {
	Count AppearanceCounts `json:"count"`
	Shows []Appearance     `json:"shows"`
}

// Appearances retrieves host appearance information.
type Appearances struct {
	db      *sql.DB
	utility *Utility
}

// NewAppearances constructs an Appearances service with the given DB handle.
func NewAppearances(db *sql.DB) *Appearances {
	return &Appearances{db: db, utility: NewUtility(db)}
}

// ByID returns appearance counts and per-show appearance rows for the
// requested host ID. Unknown or invalid IDs yield zero counts and an empty
// show list.
func (a *Appearances) ByID(ctx context.Context, id int64) (AppearanceInfo, error) {
	info := AppearanceInfo{Shows: []Appearance{}}
	if !validation.ValidIntID(id) {
		return info, nil
	}

	const countQuery = `SELECT (
               SELECT COUNT(hm.showid) FROM ww_showhostmap hm
               JOIN ww_shows s ON s.showid = hm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND hm.hostid = ? ) AS regular_shows, (
               SELECT COUNT(hm.showid) FROM ww_showhostmap hm
               JOIN ww_shows s ON s.showid = hm.showid
               WHERE hm.hostid = ? ) AS all_shows`
	err := a.db.QueryRowContext(ctx, countQuery, id, id).
		Scan(&info.Count.RegularShows, &info.Count.AllShows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AppearanceInfo{}, err
	}

	const showQuery = `SELECT hm.showid, s.showdate, s.bestof, s.repeatshowid,
               hm.guest
               FROM ww_showhostmap hm
               JOIN ww_hosts h ON h.hostid = hm.hostid
               JOIN ww_shows s ON s.showid = hm.showid
               WHERE hm.hostid = ?
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
			guestHost  int64
		)
		if err := rows.Scan(&appearance.ShowID, &date, &bestOf, &repeatOf,
			&guestHost); err != nil {
			return AppearanceInfo{}, err
		}
		appearance.Date = date.Format(time.DateOnly)
		appearance.BestOf = bestOf != 0
		appearance.RepeatShow = repeatOf.Valid
		appearance.Guest = guestHost != 0
		info.Shows = append(info.Shows, appearance)
	}
	return info, rows.Err()
}

// BySlug returns appearance information for the requested host slug string.
func (a *Appearances) BySlug(ctx context.Context, hostSlug string) (AppearanceInfo, error) {
	empty := AppearanceInfo{Shows: []Appearance{}}
	hostSlug = strings.TrimSpace(hostSlug)
	if hostSlug == "" {
		return empty, nil
	}

	id, err := a.utility.ConvertSlugToID(ctx, hostSlug)
	if err != nil {
		return AppearanceInfo{}, err
	}
	if id == 0 {
		return empty, nil
	}
	return a.ByID(ctx, id)
}
