// Package panelist retrieves panelist data from a copy of the Wait Wait
// Stats database, including appearance, scoring and Bluff the Listener
// information.
//
// Not-found lookups and malformed input return nil or empty results rather
// than errors; errors are reserved for driver and connection failures.
//
// Scores are stored both as integers and, on newer database versions, as
// decimals. Constructing the service with useDecimalScores set routes
// scoring reads through the decimal column; on databases without that
// column those reads fail with a driver error.
package panelist

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is the basic panelist record.
type Info struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Pronouns []string `json:"pronouns"`
	URL      *string  `json:"url,omitempty"`
}

// Details is a panelist record with statistics, Bluff counts and appearance
// information attached. Statistics is nil for panelists with no scored
// appearances.
type Details struct {
	Info
	Statistics  *StatisticsInfo `json:"statistics"`
	Bluffs      BluffCounts     `json:"bluffs"`
	Appearances AppearanceInfo  `json:"appearances"`
}

// Panelist retrieves panelist records.
type Panelist struct {
	db *sql.DB

	Appearances   *Appearances
	Scores        *Scores
	DecimalScores *DecimalScores
	Statistics    *Statistics
	Utility       *Utility
}

// New constructs a Panelist service with the given DB handle. When
// useDecimalScores is set, appearance rows carry decimal scores and
// statistics are computed from the decimal score column.
func New(db *sql.DB, useDecimalScores bool) *Panelist {
	return &Panelist{
		db:            db,
		Appearances:   NewAppearances(db, useDecimalScores),
		Scores:        NewScores(db),
		DecimalScores: NewDecimalScores(db),
		Statistics:    NewStatistics(db, useDecimalScores),
		Utility:       NewUtility(db),
	}
}

// All returns the basic record for every panelist, sorted by name.
// Placeholder rows (slug "multiple") are excluded.
func (p *Panelist) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT panelistid, panelist, panelistslug, panelisturl
               FROM ww_panelists
               WHERE panelistslug != 'multiple'
               ORDER BY panelist ASC`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	panelists := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		panelists = append(panelists, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range panelists {
		if panelists[i].Pronouns, err = pronouns(ctx, p.db, panelists[i].ID); err != nil {
			return nil, err
		}
	}
	return panelists, nil
}

// AllDetails returns the detail record for every panelist, sorted by name.
func (p *Panelist) AllDetails(ctx context.Context) ([]Details, error) {
	panelists, err := p.All(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(panelists))
	for _, info := range panelists {
		d, err := p.details(ctx, info)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// AllIDs returns all panelist IDs, sorted by panelist name.
func (p *Panelist) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT panelistid FROM ww_panelists
               WHERE panelistslug != 'multiple'
               ORDER BY panelist ASC`
	rows, err := p.db.QueryContext(ctx, q)
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

// AllSlugs returns all panelist slug strings, sorted by panelist name.
func (p *Panelist) AllSlugs(ctx context.Context) ([]string, error) {
	const q = `SELECT panelistslug FROM ww_panelists
               WHERE panelistslug != 'multiple'
               ORDER BY panelist ASC`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// ByID returns the basic record for the requested panelist ID, or nil when
// no such panelist exists.
func (p *Panelist) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT panelistid, panelist, panelistslug, panelisturl
               FROM ww_panelists
               WHERE panelistid = ?
               LIMIT 1`
	row := p.db.QueryRowContext(ctx, q, id)
	info, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if info.Pronouns, err = pronouns(ctx, p.db, info.ID); err != nil {
		return nil, err
	}
	return &info, nil
}

// BySlug returns the basic record for the requested panelist slug string, or
// nil when no such panelist exists.
func (p *Panelist) BySlug(ctx context.Context, panelistSlug string) (*Info, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return nil, nil
	}

	id, err := p.Utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return p.ByID(ctx, id)
}

// DetailsByID returns the detail record for the requested panelist ID, or
// nil when no such panelist exists.
func (p *Panelist) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	info, err := p.ByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}
	return p.details(ctx, *info)
}

// DetailsBySlug returns the detail record for the requested panelist slug
// string, or nil when no such panelist exists.
func (p *Panelist) DetailsBySlug(ctx context.Context, panelistSlug string) (*Details, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return nil, nil
	}

	id, err := p.Utility.ConvertSlugToID(ctx, panelistSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return p.DetailsByID(ctx, id)
}

// RandomID returns a panelist ID chosen uniformly at random.
func (p *Panelist) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT panelistid FROM ww_panelists
               WHERE panelistslug != 'multiple'
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := p.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomSlug returns a panelist slug string chosen uniformly at random.
func (p *Panelist) RandomSlug(ctx context.Context) (string, error) {
	const q = `SELECT panelistslug FROM ww_panelists
               WHERE panelistslug != 'multiple'
               ORDER BY RAND()
               LIMIT 1`
	var s string
	err := p.db.QueryRowContext(ctx, q).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// Random returns the basic record for a randomly selected panelist.
func (p *Panelist) Random(ctx context.Context) (*Info, error) {
	id, err := p.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return p.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected panelist.
func (p *Panelist) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := p.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return p.DetailsByID(ctx, id)
}

func (p *Panelist) details(ctx context.Context, info Info) (*Details, error) {
	statistics, err := p.Statistics.ByID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	bluffs, err := p.Statistics.BluffsByID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	appearances, err := p.Appearances.ByID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	return &Details{
		Info:        info,
		Statistics:  statistics,
		Bluffs:      bluffs,
		Appearances: appearances,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfo(row rowScanner) (Info, error) {
	var (
		info     Info
		infoSlug sql.NullString
		infoURL  sql.NullString
	)
	if err := row.Scan(&info.ID, &info.Name, &infoSlug, &infoURL); err != nil {
		return Info{}, err
	}
	if infoSlug.Valid && infoSlug.String != "" {
		info.Slug = infoSlug.String
	} else {
		info.Slug = slug.Make(info.Name)
	}
	if infoURL.Valid && infoURL.String != "" {
		info.URL = &infoURL.String
	}
	info.Pronouns = []string{}
	return info, nil
}

func pronouns(ctx context.Context, db *sql.DB, id int64) ([]string, error) {
	const q = `SELECT p.pronouns
               FROM ww_panelistpronounsmap ppm
               JOIN ww_pronouns p ON p.pronounsid = ppm.pronounsid
               WHERE ppm.panelistid = ?
               ORDER BY ppm.panelistpronounsmapid ASC`
	rows, err := db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
