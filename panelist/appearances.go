package panelist

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wwdtm/stats/internal/validation"
)

// AppearanceCounts tallies a panelist's show appearances. Regular shows
// exclude Best Of and repeat shows; ShowsWithScores counts regular shows
// where a score was recorded.
type AppearanceCounts struct {
	RegularShows    int64 `json:"regular_shows"`
	AllShows        int64 `json:"all_shows"`
	ShowsWithScores int64 `json:"shows_with_scores"`
}

// Milestone is a single show reference used in appearance milestones.
type Milestone struct {
	ShowID   int64  `json:"show_id"`
	ShowDate string `json:"show_date"`
}

// Milestones marks a panelist's first and most recent regular show
// appearances.
type Milestones struct {
	First      Milestone `json:"first"`
	MostRecent Milestone `json:"most_recent"`
}

// Appearance is one show appearance for a panelist. ScoreDecimal is only
// populated when the service was constructed with decimal scores enabled.
type Appearance struct {
	ShowID                int64            `json:"show_id"`
	Date                  string           `json:"date"`
	BestOf                bool             `json:"best_of"`
	RepeatShow            bool             `json:"repeat_show"`
	LightningRoundStart   *int64           `json:"lightning_round_start"`
	LightningRoundCorrect *int64           `json:"lightning_round_correct"`
	Score                 *int64           `json:"score"`
	ScoreDecimal          *decimal.Decimal `json:"score_decimal,omitempty"`
	Rank                  *string          `json:"rank"`
}

// AppearanceInfo aggregates appearance counts, milestones and the
// corresponding show rows. Milestones is nil for panelists with no regular
// show appearances; Shows is always non-nil.
type AppearanceInfo struct {
	Count      AppearanceCounts `json:"count"`
	Milestones *Milestones      `json:"milestones"`
	Shows      []Appearance     `json:"shows"`
}

// Appearances retrieves panelist appearance information.
type Appearances struct {
	db               *sql.DB
	utility          *Utility
	useDecimalScores bool
}

// NewAppearances constructs an Appearances service with the given DB handle.
func NewAppearances(db *sql.DB, useDecimalScores bool) *Appearances {
	return &Appearances{
		db:               db,
		utility:          NewUtility(db),
		useDecimalScores: useDecimalScores,
	}
}

// ByID returns appearance counts, milestones and per-show appearance rows
// for the requested panelist ID. Unknown or invalid IDs yield zero counts
// and an empty show list.
func (a *Appearances) ByID(ctx context.Context, id int64) (AppearanceInfo, error) {
	info := AppearanceInfo{Shows: []Appearance{}}
	if !validation.ValidIntID(id) {
		return info, nil
	}

	const countQuery = `SELECT (
               SELECT COUNT(pm.showid) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistid = ? ) AS regular_shows, (
               SELECT COUNT(pm.showid) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? ) AS all_shows, (
               SELECT COUNT(pm.panelistid) FROM ww_showpnlmap pm
               JOIN ww_shows s ON pm.showid = s.showid
               WHERE pm.panelistid = ? AND s.bestof = 0
               AND s.repeatshowid IS NULL
               AND pm.panelistscore IS NOT NULL ) AS shows_with_scores`
	err := a.db.QueryRowContext(ctx, countQuery, id, id, id).
		Scan(&info.Count.RegularShows, &info.Count.AllShows,
			&info.Count.ShowsWithScores)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AppearanceInfo{}, err
	}

	milestones, err := a.milestones(ctx, id)
	if err != nil {
		return AppearanceInfo{}, err
	}
	info.Milestones = milestones

	showQuery := `SELECT pm.showid, s.showdate, s.bestof, s.repeatshowid,
               pm.panelistlrndstart, pm.panelistlrndcorrect,
               pm.panelistscore, pm.showpnlrank
               FROM ww_showpnlmap pm
               JOIN ww_panelists p ON p.panelistid = pm.panelistid
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               ORDER BY s.showdate ASC`
	if a.useDecimalScores {
		showQuery = `SELECT pm.showid, s.showdate, s.bestof, s.repeatshowid,
               pm.panelistlrndstart, pm.panelistlrndcorrect,
               pm.panelistscore, pm.panelistscore_decimal, pm.showpnlrank
               FROM ww_showpnlmap pm
               JOIN ww_panelists p ON p.panelistid = pm.panelistid
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               ORDER BY s.showdate ASC`
	}
	rows, err := a.db.QueryContext(ctx, showQuery, id)
	if err != nil {
		return AppearanceInfo{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			appearance   Appearance
			date         time.Time
			bestOf       int64
			repeatOf     sql.NullInt64
			start        sql.NullInt64
			correct      sql.NullInt64
			score        sql.NullInt64
			scoreDecimal decimal.NullDecimal
			rank         sql.NullString
		)
		dest := []any{&appearance.ShowID, &date, &bestOf, &repeatOf,
			&start, &correct, &score}
		if a.useDecimalScores {
			dest = append(dest, &scoreDecimal)
		}
		dest = append(dest, &rank)
		if err := rows.Scan(dest...); err != nil {
			return AppearanceInfo{}, err
		}
		appearance.Date = date.Format(time.DateOnly)
		appearance.BestOf = bestOf != 0
		appearance.RepeatShow = repeatOf.Valid
		if start.Valid {
			appearance.LightningRoundStart = &start.Int64
		}
		if correct.Valid {
			appearance.LightningRoundCorrect = &correct.Int64
		}
		if score.Valid {
			appearance.Score = &score.Int64
		}
		if scoreDecimal.Valid {
			appearance.ScoreDecimal = &scoreDecimal.Decimal
		}
		if rank.Valid && rank.String != "" {
			appearance.Rank = &rank.String
		}
		info.Shows = append(info.Shows, appearance)
	}
	return info, rows.Err()
}

// BySlug returns appearance information for the requested panelist slug
// string.
func (a *Appearances) BySlug(ctx context.Context, panelistSlug string) (AppearanceInfo, error) {
	empty := AppearanceInfo{Shows: []Appearance{}}
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return empty, nil
	}

	id, err := a.utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil {
		return AppearanceInfo{}, err
	}
	if id == 0 {
		return empty, nil
	}
	return a.ByID(ctx, id)
}

// YearlyByID returns a panelist's regular show appearance counts broken down
// by year. Every year with at least one show in the database is present in
// the map, zero-filled when the panelist did not appear that year.
func (a *Appearances) YearlyByID(ctx context.Context, id int64) (map[int]int64, error) {
	if !validation.ValidIntID(id) {
		return map[int]int64{}, nil
	}

	const yearQuery = `SELECT DISTINCT YEAR(s.showdate) AS year
               FROM ww_shows s
               ORDER BY YEAR(s.showdate) ASC`
	rows, err := a.db.QueryContext(ctx, yearQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := map[int]int64{}
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years[year] = 0
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const countQuery = `SELECT YEAR(s.showdate) AS year,
               COUNT(p.panelist) AS count
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               JOIN ww_panelists p ON p.panelistid = pm.panelistid
               WHERE pm.panelistid = ? AND s.bestof = 0
               AND s.repeatshowid IS NULL
               GROUP BY p.panelist, YEAR(s.showdate)
               ORDER BY p.panelist ASC, YEAR(s.showdate) ASC`
	counts, err := a.db.QueryContext(ctx, countQuery, id)
	if err != nil {
		return nil, err
	}
	defer counts.Close()

	for counts.Next() {
		var (
			year  int
			count int64
		)
		if err := counts.Scan(&year, &count); err != nil {
			return nil, err
		}
		years[year] = count
	}
	return years, counts.Err()
}

// YearlyBySlug returns a panelist's yearly appearance breakdown for the
// requested panelist slug string.
func (a *Appearances) YearlyBySlug(ctx context.Context, panelistSlug string) (map[int]int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return map[int]int64{}, nil
	}

	id, err := a.utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return map[int]int64{}, nil
	}
	return a.YearlyByID(ctx, id)
}

func (a *Appearances) milestones(ctx context.Context, id int64) (*Milestones, error) {
	const q = `SELECT MIN(s.showid) AS first_id, MIN(s.showdate) AS first,
               MAX(s.showid) AS most_recent_id, MAX(s.showdate) AS most_recent
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistid = ?`
	var (
		firstID      sql.NullInt64
		firstDate    sql.NullTime
		mostRecentID sql.NullInt64
		mostRecent   sql.NullTime
	)
	err := a.db.QueryRowContext(ctx, q, id).
		Scan(&firstID, &firstDate, &mostRecentID, &mostRecent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !firstID.Valid {
		return nil, nil
	}

	return &Milestones{
		First: Milestone{
			ShowID:   firstID.Int64,
			ShowDate: firstDate.Time.Format(time.DateOnly),
		},
		MostRecent: Milestone{
			ShowID:   mostRecentID.Int64,
			ShowDate: mostRecent.Time.Format(time.DateOnly),
		},
	}, nil
}
