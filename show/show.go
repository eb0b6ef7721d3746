// Package show retrieves show data from a copy of the Wait Wait Stats
// database, including per-show host, scorekeeper, panelist, guest and Bluff
// the Listener information.
//
// Not-found lookups and malformed input return nil or empty results rather
// than errors; errors are reserved for driver and connection failures.
package show

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wwdtm/stats/internal/validation"
)

// Window used by Recent and RecentDetails.
const (
	recentDaysBack  = 32
	recentDaysAhead = 7
)

// Info is the basic show record. OriginalShowID and OriginalShowDate are
// only set for repeat shows.
type Info struct {
	ID               int64   `json:"id"`
	Date             string  `json:"date"`
	BestOf           bool    `json:"best_of"`
	RepeatShow       bool    `json:"repeat_show"`
	OriginalShowID   *int64  `json:"original_show_id,omitempty"`
	OriginalShowDate *string `json:"original_show_date,omitempty"`
	URL              *string `json:"show_url,omitempty"`
}

// ShowScores pairs one show date with all panelist scores from that show,
// in ascending score order.
type ShowScores struct {
	Date   string            `json:"date"`
	Scores []decimal.Decimal `json:"scores"`
}

// Show retrieves show records.
type Show struct {
	db               *sql.DB
	useDecimalScores bool

	Information *Information
	Utility     *Utility
}

// New constructs a Show service with the given DB handle. When
// useDecimalScores is set, panelist rows in show details and score listings
// read from the decimal score column.
func New(db *sql.DB, useDecimalScores bool) *Show {
	return &Show{
		db:               db,
		useDecimalScores: useDecimalScores,
		Information:      NewInformation(db, useDecimalScores),
		Utility:          NewUtility(db),
	}
}

// All returns the basic record for every show, ordered by show date.
func (s *Show) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT showid, showdate, bestof, repeatshowid, showurl
               FROM ww_shows
               ORDER BY showdate ASC`
	return s.queryInfos(ctx, q)
}

// AllDetails returns the detail record for every show, ordered by show
// date.
func (s *Show) AllDetails(ctx context.Context) ([]Details, error) {
	ids, err := s.AllIDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.detailsForIDs(ctx, ids)
}

// AllIDs returns all show IDs, ordered by show date.
func (s *Show) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT showid FROM ww_shows ORDER BY showdate ASC`
	return s.queryIDs(ctx, q)
}

// AllDates returns all show dates, ordered by show date.
func (s *Show) AllDates(ctx context.Context) ([]string, error) {
	const q = `SELECT showdate FROM ww_shows ORDER BY showdate ASC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date.Format(time.DateOnly))
	}
	return dates, rows.Err()
}

// AllYearsMonths returns every distinct year and month combination with at
// least one show, formatted as YYYY-MM and ordered by show date.
func (s *Show) AllYearsMonths(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT YEAR(showdate), MONTH(showdate)
               FROM ww_shows
               ORDER BY showdate ASC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	yearsMonths := []string{}
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, err
		}
		yearsMonths = append(yearsMonths, fmt.Sprintf("%04d-%02d", year, month))
	}
	return yearsMonths, rows.Err()
}

// ByID returns the basic record for the requested show ID, or nil when no
// such show exists.
func (s *Show) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT showid, showdate, bestof, repeatshowid, showurl
               FROM ww_shows
               WHERE showid = ?
               LIMIT 1`
	row := s.db.QueryRowContext(ctx, q, id)
	info, err := s.scanInfo(ctx, row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// ByDate returns the basic record for the show that aired on the requested
// year, month and day, or nil when no show aired that day.
func (s *Show) ByDate(ctx context.Context, year, month, day int) (*Info, error) {
	id, err := s.Utility.ConvertDateToID(ctx, year, month, day)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.ByID(ctx, id)
}

// ByDateString returns the basic record for the show that aired on the
// requested date, formatted as YYYY-MM-DD.
func (s *Show) ByDateString(ctx context.Context, date string) (*Info, error) {
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, nil
	}
	return s.ByDate(ctx, parsed.Year(), int(parsed.Month()), parsed.Day())
}

// ByYear returns the basic record for every show that aired in the
// requested year, ordered by show date.
func (s *Show) ByYear(ctx context.Context, year int) ([]Info, error) {
	if !validation.ValidYear(year) {
		return []Info{}, nil
	}

	const q = `SELECT showid FROM ww_shows
               WHERE YEAR(showdate) = ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, year)
	if err != nil {
		return nil, err
	}
	return s.infosForIDs(ctx, ids)
}

// ByYearMonth returns the basic record for every show that aired in the
// requested year and month, ordered by show date.
func (s *Show) ByYearMonth(ctx context.Context, year, month int) ([]Info, error) {
	if !validation.ValidYear(year) || !validation.ValidMonth(month) {
		return []Info{}, nil
	}

	const q = `SELECT showid FROM ww_shows
               WHERE YEAR(showdate) = ?
               AND MONTH(showdate) = ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, year, month)
	if err != nil {
		return nil, err
	}
	return s.infosForIDs(ctx, ids)
}

// DetailsByID returns the detail record for the requested show ID, or nil
// when no such show exists.
func (s *Show) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}
	return s.Information.AllByID(ctx, id)
}

// DetailsByDate returns the detail record for the show that aired on the
// requested year, month and day.
func (s *Show) DetailsByDate(ctx context.Context, year, month, day int) (*Details, error) {
	id, err := s.Utility.ConvertDateToID(ctx, year, month, day)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.DetailsByID(ctx, id)
}

// DetailsByDateString returns the detail record for the show that aired on
// the requested date, formatted as YYYY-MM-DD.
func (s *Show) DetailsByDateString(ctx context.Context, date string) (*Details, error) {
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, nil
	}
	return s.DetailsByDate(ctx, parsed.Year(), int(parsed.Month()), parsed.Day())
}

// DetailsByYear returns the detail record for every show that aired in the
// requested year, ordered by show date.
func (s *Show) DetailsByYear(ctx context.Context, year int) ([]Details, error) {
	if !validation.ValidYear(year) {
		return []Details{}, nil
	}

	const q = `SELECT showid FROM ww_shows
               WHERE YEAR(showdate) = ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, year)
	if err != nil {
		return nil, err
	}
	return s.detailsForIDs(ctx, ids)
}

// DetailsByYearMonth returns the detail record for every show that aired in
// the requested year and month, ordered by show date.
func (s *Show) DetailsByYearMonth(ctx context.Context, year, month int) ([]Details, error) {
	if !validation.ValidYear(year) || !validation.ValidMonth(month) {
		return []Details{}, nil
	}

	const q = `SELECT showid FROM ww_shows
               WHERE YEAR(showdate) = ?
               AND MONTH(showdate) = ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, year, month)
	if err != nil {
		return nil, err
	}
	return s.detailsForIDs(ctx, ids)
}

// MonthsByYear returns the months with at least one show in the requested
// year, in ascending order.
func (s *Show) MonthsByYear(ctx context.Context, year int) ([]int, error) {
	if !validation.ValidYear(year) {
		return []int{}, nil
	}

	const q = `SELECT DISTINCT MONTH(showdate)
               FROM ww_shows
               WHERE YEAR(showdate) = ?
               ORDER BY MONTH(showdate) ASC`
	rows, err := s.db.QueryContext(ctx, q, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	months := []int{}
	for rows.Next() {
		var month int
		if err := rows.Scan(&month); err != nil {
			return nil, err
		}
		months = append(months, month)
	}
	return months, rows.Err()
}

// Years returns every year with at least one show, in ascending order.
func (s *Show) Years(ctx context.Context) ([]int, error) {
	const q = `SELECT DISTINCT YEAR(showdate)
               FROM ww_shows
               ORDER BY YEAR(showdate) ASC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

// Recent returns the basic record for shows within the recent window,
// spanning from 32 days back to 7 days ahead of today.
func (s *Show) Recent(ctx context.Context) ([]Info, error) {
	start, end := recentWindow()
	const q = `SELECT showid FROM ww_shows
               WHERE showdate >= ? AND showdate <= ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	return s.infosForIDs(ctx, ids)
}

// RecentDetails returns the detail record for shows within the recent
// window.
func (s *Show) RecentDetails(ctx context.Context) ([]Details, error) {
	start, end := recentWindow()
	const q = `SELECT showid FROM ww_shows
               WHERE showdate >= ? AND showdate <= ?
               ORDER BY showdate ASC`
	ids, err := s.queryIDs(ctx, q, start, end)
	if err != nil {
		return nil, err
	}
	return s.detailsForIDs(ctx, ids)
}

// ScoresByYear returns per-show panelist scores for regular shows in the
// requested year, ordered by show date.
func (s *Show) ScoresByYear(ctx context.Context, year int) ([]ShowScores, error) {
	if !validation.ValidYear(year) {
		return []ShowScores{}, nil
	}

	q := `SELECT s.showdate AS date, pm.panelistscore AS score
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore IS NOT NULL
               AND YEAR(s.showdate) = ?
               ORDER BY s.showdate ASC, pm.panelistscore ASC`
	if s.useDecimalScores {
		q = `SELECT s.showdate AS date, pm.panelistscore_decimal AS score
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore_decimal IS NOT NULL
               AND YEAR(s.showdate) = ?
               ORDER BY s.showdate ASC, pm.panelistscore_decimal ASC`
	}
	rows, err := s.db.QueryContext(ctx, q, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := []ShowScores{}
	for rows.Next() {
		var (
			date  time.Time
			score decimal.Decimal
		)
		if err := rows.Scan(&date, &score); err != nil {
			return nil, err
		}
		formatted := date.Format(time.DateOnly)
		if len(shows) == 0 || shows[len(shows)-1].Date != formatted {
			shows = append(shows, ShowScores{Date: formatted, Scores: []decimal.Decimal{}})
		}
		last := &shows[len(shows)-1]
		last.Scores = append(last.Scores, score)
	}
	return shows, rows.Err()
}

// RandomID returns a show ID chosen uniformly at random.
func (s *Show) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT showid FROM ww_shows
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := s.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomIDByYear returns a show ID chosen uniformly at random from shows
// that aired in the requested year.
func (s *Show) RandomIDByYear(ctx context.Context, year int) (int64, error) {
	if !validation.ValidYear(year) {
		return 0, nil
	}

	const q = `SELECT showid FROM ww_shows
               WHERE YEAR(showdate) = ?
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := s.db.QueryRowContext(ctx, q, year).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomDate returns a show date chosen uniformly at random.
func (s *Show) RandomDate(ctx context.Context) (string, error) {
	const q = `SELECT showdate FROM ww_shows
               ORDER BY RAND()
               LIMIT 1`
	var date time.Time
	err := s.db.QueryRowContext(ctx, q).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return date.Format(time.DateOnly), nil
}

// RandomDateByYear returns a show date chosen uniformly at random from
// shows that aired in the requested year.
func (s *Show) RandomDateByYear(ctx context.Context, year int) (string, error) {
	if !validation.ValidYear(year) {
		return "", nil
	}

	const q = `SELECT showdate FROM ww_shows
               WHERE YEAR(showdate) = ?
               ORDER BY RAND()
               LIMIT 1`
	var date time.Time
	err := s.db.QueryRowContext(ctx, q, year).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return date.Format(time.DateOnly), nil
}

// Random returns the basic record for a randomly selected show.
func (s *Show) Random(ctx context.Context) (*Info, error) {
	id, err := s.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.ByID(ctx, id)
}

// RandomByYear returns the basic record for a randomly selected show from
// the requested year.
func (s *Show) RandomByYear(ctx context.Context, year int) (*Info, error) {
	id, err := s.RandomIDByYear(ctx, year)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected show.
func (s *Show) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := s.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.DetailsByID(ctx, id)
}

// RandomDetailsByYear returns the detail record for a randomly selected
// show from the requested year.
func (s *Show) RandomDetailsByYear(ctx context.Context, year int) (*Details, error) {
	id, err := s.RandomIDByYear(ctx, year)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.DetailsByID(ctx, id)
}

func recentWindow() (string, string) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -recentDaysBack).Format(time.DateOnly)
	end := now.AddDate(0, 0, recentDaysAhead).Format(time.DateOnly)
	return start, end
}

func (s *Show) queryIDs(ctx context.Context, q string, args ...any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Show) queryInfos(ctx context.Context, q string, args ...any) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		info, err := s.scanInfo(ctx, rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Show) infosForIDs(ctx context.Context, ids []int64) ([]Info, error) {
	infos := make([]Info, 0, len(ids))
	for _, id := range ids {
		info, err := s.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if info != nil {
			infos = append(infos, *info)
		}
	}
	return infos, nil
}

func (s *Show) detailsForIDs(ctx context.Context, ids []int64) ([]Details, error) {
	details := make([]Details, 0, len(ids))
	for _, id := range ids {
		d, err := s.DetailsByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			details = append(details, *d)
		}
	}
	return details, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Show) scanInfo(ctx context.Context, row rowScanner) (Info, error) {
	var (
		info     Info
		date     time.Time
		bestOf   int64
		repeatOf sql.NullInt64
		url      sql.NullString
	)
	if err := row.Scan(&info.ID, &date, &bestOf, &repeatOf, &url); err != nil {
		return Info{}, err
	}
	info.Date = date.Format(time.DateOnly)
	info.BestOf = bestOf != 0
	info.RepeatShow = repeatOf.Valid
	if url.Valid && url.String != "" {
		info.URL = &url.String
	}
	if repeatOf.Valid {
		originalDate, err := s.Utility.ConvertIDToDate(ctx, repeatOf.Int64)
		if err != nil {
			return Info{}, err
		}
		info.OriginalShowID = &repeatOf.Int64
		if originalDate != "" {
			info.OriginalShowDate = &originalDate
		}
	}
	return info, nil
}
