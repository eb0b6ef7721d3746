package panelist

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/wwdtm/stats/internal/validation"
)

// BluffCounts tallies how often a panelist's Bluff the Listener story was
// chosen and how often it was the correct story. Repeat shows are excluded.
type BluffCounts struct {
	Chosen  int64 `json:"chosen"`
	Correct int64 `json:"correct"`
}

// RankCounts tallies a panelist's finishing positions across regular shows.
type RankCounts struct {
	First      int64 `json:"first"`
	FirstTied  int64 `json:"first_tied"`
	Second     int64 `json:"second"`
	SecondTied int64 `json:"second_tied"`
	Third      int64 `json:"third"`
}

// RankPercentages expresses finishing positions as percentages of scored
// appearances, rounded to four decimal places.
type RankPercentages struct {
	First      float64 `json:"first"`
	FirstTied  float64 `json:"first_tied"`
	Second     float64 `json:"second"`
	SecondTied float64 `json:"second_tied"`
	Third      float64 `json:"third"`
}

// RankingInfo aggregates rank counts with their percentage breakdown.
type RankingInfo struct {
	Rank       RankCounts      `json:"rank"`
	Percentage RankPercentages `json:"percentage"`
}

// ScoringInfo summarizes a panelist's scores. Mean and standard deviation
// (population) are rounded to four decimal places.
type ScoringInfo struct {
	Minimum           float64 `json:"minimum"`
	Maximum           float64 `json:"maximum"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standard_deviation"`
	Total             float64 `json:"total"`
}

// StatisticsInfo aggregates scoring and ranking statistics for a panelist.
type StatisticsInfo struct {
	Scoring ScoringInfo `json:"scoring"`
	Ranking RankingInfo `json:"ranking"`
}

// Statistics computes panelist scoring and ranking statistics.
type Statistics struct {
	db               *sql.DB
	scores           *Scores
	decimalScores    *DecimalScores
	utility          *Utility
	useDecimalScores bool
}

// NewStatistics constructs a Statistics service with the given DB handle.
// When useDecimalScores is set, statistics are computed from the decimal
// score column.
func NewStatistics(db *sql.DB, useDecimalScores bool) *Statistics {
	return &Statistics{
		db:               db,
		scores:           NewScores(db),
		decimalScores:    NewDecimalScores(db),
		utility:          NewUtility(db),
		useDecimalScores: useDecimalScores,
	}
}

// BluffsByID returns Bluff the Listener chosen and correct counts for the
// requested panelist ID.
func (st *Statistics) BluffsByID(ctx context.Context, id int64) (BluffCounts, error) {
	if !validation.ValidIntID(id) {
		return BluffCounts{}, nil
	}

	const q = `SELECT (
               SELECT COUNT(blm.chosenbluffpnlid) FROM ww_showbluffmap blm
               JOIN ww_shows s ON s.showid = blm.showid
               WHERE s.repeatshowid IS NULL AND blm.chosenbluffpnlid = ?
               ) AS chosen, (
               SELECT COUNT(blm.correctbluffpnlid) FROM ww_showbluffmap blm
               JOIN ww_shows s ON s.showid = blm.showid
               WHERE s.repeatshowid IS NULL AND blm.correctbluffpnlid = ?
               ) AS correct`
	var counts BluffCounts
	err := st.db.QueryRowContext(ctx, q, id, id).
		Scan(&counts.Chosen, &counts.Correct)
	if errors.Is(err, sql.ErrNoRows) {
		return BluffCounts{}, nil
	}
	return counts, err
}

// BluffsBySlug returns Bluff the Listener counts for the requested panelist
// slug string.
func (st *Statistics) BluffsBySlug(ctx context.Context, panelistSlug string) (BluffCounts, error) {
	id, err := st.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return BluffCounts{}, err
	}
	return st.BluffsByID(ctx, id)
}

// RanksByID returns finishing position counts for the requested panelist
// ID across regular shows.
func (st *Statistics) RanksByID(ctx context.Context, id int64) (RankCounts, error) {
	if !validation.ValidIntID(id) {
		return RankCounts{}, nil
	}

	const q = `SELECT (
               SELECT COUNT(pm.showpnlrank) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? AND pm.showpnlrank = '1'
               AND s.bestof = 0 AND s.repeatshowid IS NULL ) AS first, (
               SELECT COUNT(pm.showpnlrank) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? AND pm.showpnlrank = '1t'
               AND s.bestof = 0 AND s.repeatshowid IS NULL ) AS first_tied, (
               SELECT COUNT(pm.showpnlrank) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? AND pm.showpnlrank = '2'
               AND s.bestof = 0 AND s.repeatshowid IS NULL ) AS second, (
               SELECT COUNT(pm.showpnlrank) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? AND pm.showpnlrank = '2t'
               AND s.bestof = 0 AND s.repeatshowid IS NULL ) AS second_tied, (
               SELECT COUNT(pm.showpnlrank) FROM ww_showpnlmap pm
               JOIN ww_shows s ON s.showid = pm.showid
               WHERE pm.panelistid = ? AND pm.showpnlrank = '3'
               AND s.bestof = 0 AND s.repeatshowid IS NULL ) AS third`
	var counts RankCounts
	err := st.db.QueryRowContext(ctx, q, id, id, id, id, id).
		Scan(&counts.First, &counts.FirstTied, &counts.Second,
			&counts.SecondTied, &counts.Third)
	if errors.Is(err, sql.ErrNoRows) {
		return RankCounts{}, nil
	}
	return counts, err
}

// RanksBySlug returns finishing position counts for the requested panelist
// slug string.
func (st *Statistics) RanksBySlug(ctx context.Context, panelistSlug string) (RankCounts, error) {
	id, err := st.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return RankCounts{}, err
	}
	return st.RanksByID(ctx, id)
}

// ByID returns scoring and ranking statistics for the requested panelist
// ID, or nil for panelists with no scored appearances.
func (st *Statistics) ByID(ctx context.Context, id int64) (*StatisticsInfo, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	scores, err := st.scoreData(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	ranks, err := st.RanksByID(ctx, id)
	if err != nil {
		return nil, err
	}

	appearances := float64(len(scores))
	return &StatisticsInfo{
		Scoring: summarize(scores),
		Ranking: RankingInfo{
			Rank: ranks,
			Percentage: RankPercentages{
				First:      round4(100 * float64(ranks.First) / appearances),
				FirstTied:  round4(100 * float64(ranks.FirstTied) / appearances),
				Second:     round4(100 * float64(ranks.Second) / appearances),
				SecondTied: round4(100 * float64(ranks.SecondTied) / appearances),
				Third:      round4(100 * float64(ranks.Third) / appearances),
			},
		},
	}, nil
}

// BySlug returns scoring and ranking statistics for the requested panelist
// slug string.
func (st *Statistics) BySlug(ctx context.Context, panelistSlug string) (*StatisticsInfo, error) {
	id, err := st.resolveSlug(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return st.ByID(ctx, id)
}

func (st *Statistics) scoreData(ctx context.Context, id int64) ([]float64, error) {
	if st.useDecimalScores {
		scores, err := st.decimalScores.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		data := make([]float64, 0, len(scores))
		for _, score := range scores {
			data = append(data, score.InexactFloat64())
		}
		return data, nil
	}

	scores, err := st.scores.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data := make([]float64, 0, len(scores))
	for _, score := range scores {
		data = append(data, float64(score))
	}
	return data, nil
}

func (st *Statistics) resolveSlug(ctx context.Context, panelistSlug string) (int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return 0, nil
	}
	return st.utility.ConvertSlugToID(ctx, panelistSlug)
}

func summarize(scores []float64) ScoringInfo {
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)

	var total float64
	for _, score := range sorted {
		total += score
	}
	mean := total / float64(len(sorted))

	var variance float64
	for _, score := range sorted {
		variance += (score - mean) * (score - mean)
	}
	variance /= float64(len(sorted))

	return ScoringInfo{
		Minimum:           sorted[0],
		Maximum:           sorted[len(sorted)-1],
		Mean:              round4(mean),
		Median:            median(sorted),
		StandardDeviation: round4(math.Sqrt(variance)),
		Total:             total,
	}
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}
