package panelist

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/wwdtm/stats/internal/validation"
)

// ScoreList pairs show dates with the scores a panelist earned on those
// shows, index for index.
type ScoreList struct {
	Shows  []string `json:"shows"`
	Scores []int64  `json:"scores"`
}

// ShowScore is one show date and the score earned on that show.
type ShowScore struct {
	Date  string `json:"date"`
	Score int64  `json:"score"`
}

// ScoreCount is one score value and the number of times a panelist earned
// it.
type ScoreCount struct {
	Score int64 `json:"score"`
	Count int64 `json:"count"`
}

// ScoreGrouping pairs each score value in the overall score range with the
// number of times a panelist earned it, index for index.
type ScoreGrouping struct {
	Scores []int64 `json:"score"`
	Counts []int64 `json:"count"`
}

// Scores retrieves panelist scoring information from the integer score
// column. Only regular shows count toward scoring; Best Of and repeat shows
// are excluded throughout.
type Scores struct {
	db      *sql.DB
	utility *Utility
}

// NewScores constructs a Scores service with the given DB handle.
func NewScores(db *sql.DB) *Scores {
	return &Scores{db: db, utility: NewUtility(db)}
}

// ByID returns all recorded scores for the requested panelist ID.
func (s *Scores) ByID(ctx context.Context, id int64) ([]int64, error) {
	scores := []int64{}
	if !validation.ValidIntID(id) {
		return scores, nil
	}

	const q = `SELECT pm.panelistscore
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore IS NOT NULL
               ORDER BY s.showdate ASC`
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var score int64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// BySlug returns all recorded scores for the requested panelist slug string.
func (s *Scores) BySlug(ctx context.Context, panelistSlug string) ([]int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return []int64{}, nil
	}

	id, err := s.utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return []int64{}, nil
	}
	return s.ByID(ctx, id)
}

// ListByID returns parallel lists of show dates and scores for the
// requested panelist ID, or nil when the panelist has no recorded scores.
func (s *Scores) ListByID(ctx context.Context, id int64) (*ScoreList, error) {
	pairs, err := s.OrderedPairByID(ctx, id)
	if err != nil || len(pairs) == 0 {
		return nil, err
	}

	list := &ScoreList{
		Shows:  make([]string, 0, len(pairs)),
		Scores: make([]int64, 0, len(pairs)),
	}
	for _, pair := range pairs {
		list.Shows = append(list.Shows, pair.Date)
		list.Scores = append(list.Scores, pair.Score)
	}
	return list, nil
}

// ListBySlug returns parallel lists of show dates and scores for the
// requested panelist slug string.
func (s *Scores) ListBySlug(ctx context.Context, panelistSlug string) (*ScoreList, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.ListByID(ctx, id)
}

// OrderedPairByID returns date and score pairs for the requested panelist
// ID, ordered by show date.
func (s *Scores) OrderedPairByID(ctx context.Context, id int64) ([]ShowScore, error) {
	pairs := []ShowScore{}
	if !validation.ValidIntID(id) {
		return pairs, nil
	}

	const q = `SELECT s.showdate, pm.panelistscore
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore IS NOT NULL
               ORDER BY s.showdate ASC`
	rows, err := s.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			date  time.Time
			score int64
		)
		if err := rows.Scan(&date, &score); err != nil {
			return nil, err
		}
		pairs = append(pairs, ShowScore{
			Date:  date.Format(time.DateOnly),
			Score: score,
		})
	}
	return pairs, rows.Err()
}

// OrderedPairBySlug returns date and score pairs for the requested panelist
// slug string.
func (s *Scores) OrderedPairBySlug(ctx context.Context, panelistSlug string) ([]ShowScore, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return []ShowScore{}, nil
	}
	return s.OrderedPairByID(ctx, id)
}

// GroupedOrderedPairByID returns score and count pairs covering the overall
// score range recorded across all panelists, zero-filled for scores the
// requested panelist never earned. Nil is returned when the panelist has no
// recorded scores.
func (s *Scores) GroupedOrderedPairByID(ctx context.Context, id int64) ([]ScoreCount, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const rangeQuery = `SELECT MIN(pm.panelistscore) AS min,
               MAX(pm.panelistscore) AS max
               FROM ww_showpnlmap pm`
	var minScore, maxScore sql.NullInt64
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

	grouped := make([]ScoreCount, 0, maxScore.Int64-minScore.Int64+1)
	index := map[int64]int{}
	for score := minScore.Int64; score <= maxScore.Int64; score++ {
		index[score] = len(grouped)
		grouped = append(grouped, ScoreCount{Score: score})
	}

	const countQuery = `SELECT pm.panelistscore AS score,
               COUNT(pm.panelistscore) AS score_count
               FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ?
               AND s.bestof = 0 AND s.repeatshowid IS NULL
               AND pm.panelistscore IS NOT NULL
               GROUP BY pm.panelistscore
               ORDER BY pm.panelistscore ASC`
	rows, err := s.db.QueryContext(ctx, countQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matched := false
	for rows.Next() {
		var (
			score int64
			count int64
		)
		if err := rows.Scan(&score, &count); err != nil {
			return nil, err
		}
		if i, ok := index[score]; ok {
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

// GroupedOrderedPairBySlug returns grouped score and count pairs for the
// requested panelist slug string.
func (s *Scores) GroupedOrderedPairBySlug(ctx context.Context, panelistSlug string) ([]ScoreCount, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.GroupedOrderedPairByID(ctx, id)
}

// GroupedListByID returns the grouped score distribution as parallel score
// and count lists, or nil when the panelist has no recorded scores.
func (s *Scores) GroupedListByID(ctx context.Context, id int64) (*ScoreGrouping, error) {
	pairs, err := s.GroupedOrderedPairByID(ctx, id)
	if err != nil || pairs == nil {
		return nil, err
	}

	grouping := &ScoreGrouping{
		Scores: make([]int64, 0, len(pairs)),
		Counts: make([]int64, 0, len(pairs)),
	}
	for _, pair := range pairs {
		grouping.Scores = append(grouping.Scores, pair.Score)
		grouping.Counts = append(grouping.Counts, pair.Count)
	}
	return grouping, nil
}

// GroupedListBySlug returns the grouped score distribution for the
// requested panelist slug string.
func (s *Scores) GroupedListBySlug(ctx context.Context, panelistSlug string) (*ScoreGrouping, error) {
	id, err := s.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.GroupedListByID(ctx, id)
}

func (s *Scores) resolveSlug(ctx context.Context, panelistSlug string) (int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return 0, nil
	}
	return s.utility.ConvertSlugToID(ctx, panelistSlug)
}
