package panelist

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wwdtm/stats/internal/validation"
)

// DecimalScoreList pairs show dates with the decimal scores a panelist
// earned on those shows, index for index.
type DecimalScoreList struct {
	Shows  []string          `json:"shows"`
	Scores []decimal.Decimal `json:"scores"`
}

// ShowDecimalScore is one show date and the decimal score earned on that
// show.
type ShowDecimalScore struct {
	Date  string          `json:"date"`
	Score decimal.Decimal `json:"score"`
}

// DecimalScoreCount is one decimal score value, rendered without trailing
// zeros, and the number of times a panelist earned it.
type DecimalScoreCount struct {
	Score string `json:"score"`
	Count int64  `json:"count"`
}

// DecimalScoreGrouping pairs each half-point score value in the overall
// score range with the number of times a panelist earned it, index for
// index.
type DecimalScoreGrouping struct {
	Scores []string `json:"score"`
	Counts []int64  `json:"count"`
}

// DecimalScores retrieves panelist scoring information from the decimal
// score column. Only regular shows count toward scoring; Best Of and repeat
// shows are excluded throughout.
//
// The column is only present on newer database versions; against older
// databases these reads fail with a driver error.
type DecimalScores struct {
	db      *sql.DB
	utility *Utility
}

// NewDecimalScores constructs a DecimalScores service with the given DB
// handle.
func NewDecimalScores(db *sql.DB) *DecimalScores {
	return &DecimalScores{db: db, utility: NewUtility(db)}
}

// ByID returns all recorded decimal scores for the requested panelist ID.
func (s *DecimalScores) ByID(ctx context.Context, id int64) ([]decimal.Decimal, error) {
	scores := []decimal.Decimal{}
	if !validation.ValidIntID(id) {
		return scores, nil
	}

	const q = `SELECT pm.panelistscore_decimal
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore_decimal IS NOT NULL
               ORDER BY s.showdate ASC`
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var score decimal.Decimal
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// BySlug returns all recorded decimal scores for the requested panelist
// slug string.
func (s *DecimalScores) BySlug(ctx context.Context, panelistSlug string) ([]decimal.Decimal, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return []decimal.Decimal{}, nil
	}

	id, err := s.utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return []decimal.Decimal{}, nil
	}
	return s.ByID(ctx, id)
}

// ListByID returns parallel lists of show dates and decimal scores for the
// requested panelist ID, or nil when the panelist has no recorded scores.
func (s *DecimalScores) ListByID(ctx context.Context, id int64) (*DecimalScoreList, error) {
	pairs, err := s.OrderedPairByID(ctx, id)
	if err != nil || len(pairs) == 0 {
		return nil, err
	}

	list := &DecimalScoreList{
		Shows:  make([]string, 0, len(pairs)),
		Scores: make([]decimal.Decimal, 0, len(pairs)),
	}
	for _, pair := range pairs {
		list.Shows = append(list.Shows, pair.Date)
		list.Scores = append(list.Scores, pair.Score)
	}
	return list, nil
}

// ListBySlug returns parallel lists of show dates and decimal scores for
// the requested panelist slug string.
func (s *DecimalScores) ListBySlug(ctx context.Context, panelistSlug string) (*DecimalScoreList, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.ListByID(ctx, id)
}

// OrderedPairByID returns date and decimal score pairs for the requested
// panelist ID, ordered by show date.
func (s *DecimalScores) OrderedPairByID(ctx context.Context, id int64) ([]ShowDecimalScore, error) {
	pairs := []ShowDecimalScore{}
	if !validation.ValidIntID(id) {
		return pairs, nil
	}

	const q = `SELECT s.showdate, pm.panelistscore_decimal
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore_decimal IS NOT NULL
               ORDER BY s.showdate ASC`
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			date  time.Time
			score decimal.Decimal
		)
		if err := rows.Scan(&date, &score); err != nil {
			return nil, err
		}
		pairs = append(pairs, ShowDecimalScore{
			Date:  date.Format(time.DateOnly),
			Score: score,
		})
	}
	return pairs, rows.Err()
}

// OrderedPairBySlug returns date and decimal score pairs for the requested
// panelist slug string.
func (s *DecimalScores) OrderedPairBySlug(ctx context.Context, panelistSlug string) ([]ShowDecimalScore, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return []ShowDecimalScore{}, nil
	}
	return s.OrderedPairByID(ctx, id)
}

// GroupedOrderedPairByID returns half-point score and count pairs covering
// the overall decimal score range recorded across all panelists,
// zero-filled for scores the requested panelist never earned. Nil is
// returned when the panelist has no recorded scores.
func (s *DecimalScores) GroupedOrderedPairByID(ctx context.Context, id int64) ([]DecimalScoreCount, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const rangeQuery = `SELECT MIN(pm.panelistscore_decimal) AS min,
               MAX(pm.panelistscore_decimal) AS max
               FROM ww_showpnlmap pm`
	var minScore, maxScore decimal.NullDecimal
	err := s.db.QueryRowContext(ctx, rangeQuery).Scan(&minScore, &maxScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !minScore.Valid || !maxScore.Valid {
		return nil, nil
	}

	grouped := []DecimalScoreCount{}
	index := map[string]int{}
	lower := minScore.Decimal.Floor().IntPart()
	upper := maxScore.Decimal.Floor().IntPart()
	for score := lower; score <= upper; score++ {
		whole := decimal.NewFromInt(score)
		half := whole.Add(decimal.New(5, -1))
		for _, bucket := range []decimal.Decimal{whole, half} {
			label := formatScore(bucket)
			index[label] = len(grouped)
			grouped = append(grouped, DecimalScoreCount{Score: label})
		}
	}

	const countQuery = `SELECT pm.panelistscore_decimal AS score,
               COUNT(pm.panelistscore_decimal) AS score_count
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore_decimal IS NOT NULL
               GROUP BY pm.panelistscore_decimal
               ORDER BY pm.panelistscore_decimal ASC`
	rows, err := s.db.QueryContext(ctx, countQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matched := false
	for rows.Next() {
		var (
			score decimal.Decimal
			count int64
		)
		if err := rows.Scan(&score, &count); err != nil {
			return nil, err
		}
		if i, ok := index[formatScore(score)]; ok {
			grouped[i].Count = count
			matched = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !matched {
		return nil, nil
	}
	return grouped, nil
}

// GroupedOrderedPairBySlug returns grouped decimal score and count pairs
// for the requested panelist slug string.
func (s *DecimalScores) GroupedOrderedPairBySlug(ctx context.Context, panelistSlug string) ([]DecimalScoreCount, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.GroupedOrderedPairByID(ctx, id)
}

// GroupedListByID returns the grouped decimal score distribution as
// parallel score and count lists, or nil when the panelist has no recorded
// scores.
func (s *DecimalScores) GroupedListByID(ctx context.Context, id int64) (*DecimalScoreGrouping, error) {
	pairs, err := s.GroupedOrderedPairByID(ctx, id)
	if err != nil || pairs == nil {
		return nil, err
	}

	grouping := &DecimalScoreGrouping{
		Scores: make([]string, 0, len(pairs)),
		Counts: make([]int64, 0, len(pairs)),
	}
	for _, pair := range pairs {
		grouping.Scores = append(grouping.Scores, pair.Score)
		grouping.Counts = append(grouping.Counts, pair.Count)
	}
	return grouping, nil
}

// GroupedListBySlug returns the grouped decimal score distribution for the
// requested panelist slug string.
func (s *DecimalScores) GroupedListBySlug(ctx context.Context, panelistSlug string) (*DecimalScoreGrouping, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.GroupedListByID(ctx, id)
}

func (s *DecimalScores) resolveSlug(ctx context.Context, panelistSlug string) (int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return 0, nil
	}
	return s.utility.ConvertSlugToID(ctx, panelistSlug)
}

// formatScore renders a decimal score without trailing zeros, so stored
// values like 17.50 and computed bucket values like 17.5 share a label.
func formatScore(d decimal.Decimal) string {
	return strconv.FormatFloat(d.InexactFloat64(), 'f', -1, 64)
}
