package show

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/wwdtm/stats/internal/validation"
)

// Utility resolves show IDs and show dates against each other.
type Utility struct {
	db *sql.DB
}

// NewUtility constructs a Utility service with the given DB handle.
func NewUtility(db *sql.DB) *Utility {
	return &Utility{db: db}
}

// dateFromParts validates a year, month and day combination and returns the
// corresponding date. Impossible combinations, such as February 30, are
// rejected by round-tripping through time.Date.
func dateFromParts(year, month, day int) (time.Time, bool) {
	if !validation.ValidYear(year) || !validation.ValidMonth(month) {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// ConvertDateToID returns the show ID for the requested year, month and
// day, or zero when no show aired on that date.
func (u *Utility) ConvertDateToID(ctx context.Context, year, month, day int) (int64, error) {
	date, ok := dateFromParts(year, month, day)
	if !ok {
		return 0, nil
	}

	const q = `SELECT showid FROM ww_shows WHERE showdate = ? LIMIT 1`
	var id int64
	err := u.db.QueryRowContext(ctx, q, date.Format(time.DateOnly)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// ConvertIDToDate returns the show date for the requested show ID, or an
// empty string when no such show exists.
func (u *Utility) ConvertIDToDate(ctx context.Context, id int64) (string, error) {
	if !validation.ValidIntID(id) {
		return "", nil
	}

	const q = `SELECT showdate FROM ww_shows WHERE showid = ? LIMIT 1`
	var date time.Time
	err := u.db.QueryRowContext(ctx, q, id).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return date.Format(time.DateOnly), nil
}

// DateExists reports whether a show aired on the requested year, month and
// day.
func (u *Utility) DateExists(ctx context.Context, year, month, day int) (bool, error) {
	date, ok := dateFromParts(year, month, day)
	if !ok {
		return false, nil
	}

	const q = `SELECT showid FROM ww_shows WHERE showdate = ? LIMIT 1`
	var found int64
	err := u.db.QueryRowContext(ctx, q, date.Format(time.DateOnly)).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// IDExists reports whether the requested show ID exists.
func (u *Utility) IDExists(ctx context.Context, id int64) (bool, error) {
	if !validation.ValidIntID(id) {
		return false, nil
	}

	const q = `SELECT showid FROM ww_shows WHERE showid = ? LIMIT 1`
	var found int64
	err := u.db.QueryRowContext(ctx, q, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
