// Package scorekeeper retrieves scorekeeper data from a copy of the Wait
// Wait Stats database.
//
// Not-found lookups and malformed input return nil or empty results rather
// than errors; errors are reserved for driver and connection failures.
package scorekeeper

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is the basic scorekeeper record.
type Info struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Pronouns []string `json:"pronouns"`
	URL      *string  `json:"url,omitempty"`
}

// Details is a scorekeeper record with appearance information attached.
type Details struct {
	Info
	Appearances AppearanceInfo `json:"appearances"`
}

// Scorekeeper retrieves scorekeeper records.
type Scorekeeper struct {
	db *sql.DB

	Appearances *Appearances
	Utility     *Utility
}

// New constructs a Scorekeeper service with the given DB handle.
func New(db *sql.DB) *Scorekeeper {
	return &Scorekeeper{
		db:          db,
		Appearances: NewAppearances(db),
		Utility:     NewUtility(db),
	}
}

// All returns the basic record for every scorekeeper, sorted by name.
// Placeholder rows (slug "tbd") are excluded.
func (sk *Scorekeeper) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT scorekeeperid, scorekeeper, scorekeeperslug, scorekeeperurl
               FROM ww_scorekeepers
               WHERE scorekeeperslug != 'tbd'
               ORDER BY scorekeeper ASC`
	rows, err := sk.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scorekeepers := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		scorekeepers = append(scorekeepers, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range scorekeepers {
		if scorekeepers[i].Pronouns, err = pronouns(ctx, sk.db, scorekeepers[i].ID); err != nil {
			return nil, err
		}
	}
	return scorekeepers, nil
}

// AllDetails returns the detail record for every scorekeeper, sorted by name.
func (sk *Scorekeeper) AllDetails(ctx context.Context) ([]Details, error) {
	scorekeepers, err := sk.All(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(scorekeepers))
	for _, info := range scorekeepers {
		appearances, err := sk.Appearances.ByID(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, Details{Info: info, Appearances: appearances})
	}
	return details, nil
}

// AllIDs returns all scorekeeper IDs, sorted by scorekeeper name.
func (sk *Scorekeeper) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT scorekeeperid FROM ww_scorekeepers
               WHERE scorekeeperslug != 'tbd'
               ORDER BY scorekeeper ASC`
	rows, err := sk.db.QueryContext(ctx, q)
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

// AllSlugs returns all scorekeeper slug strings, sorted by scorekeeper name.
func (sk *Scorekeeper) AllSlugs(ctx context.Context) ([]string, error) {
	const q = `SELECT scorekeeperslug FROM ww_scorekeepers
               WHERE scorekeeperslug != 'tbd'
               ORDER BY scorekeeper ASC`
	rows, err := sk.db.QueryContext(ctx, q)
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

// ByID returns the basic record for the requested scorekeeper ID, or nil
// when no such scorekeeper exists.
func (sk *Scorekeeper) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT scorekeeperid, scorekeeper, scorekeeperslug, scorekeeperurl
               FROM ww_scorekeepers
               WHERE scorekeeperid = ?
               LIMIT 1`
	row := sk.db.QueryRowContext(ctx, q, id)
	info, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if info.Pronouns, err = pronouns(ctx, sk.db, info.ID); err != nil {
		return nil, err
	}
	return &info, nil
}

// BySlug returns the basic record for the requested scorekeeper slug string,
// or nil when no such scorekeeper exists.
func (sk *Scorekeeper) BySlug(ctx context.Context, scorekeeperSlug string) (*Info, error) {
	scorekeeperSlug = strings.TrimSpace(scorekeeperSlug)
	if scorekeeperSlug == "" {
		return nil, nil
	}

	id, err := sk.Utility.ConvertSlugToID(ctx, scorekeeperSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return sk.ByID(ctx, id)
}

// DetailsByID returns the detail record for the requested scorekeeper ID, or
// nil when no such scorekeeper exists.
func (sk *Scorekeeper) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	info, err := sk.ByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}

	appearances, err := sk.Appearances.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Info: *info, Appearances: appearances}, nil
}

// DetailsBySlug returns the detail record for the requested scorekeeper slug
// string, or nil when no such scorekeeper exists.
func (sk *Scorekeeper) DetailsBySlug(ctx context.Context, scorekeeperSlug string) (*Details, error) {
	scorekeeperSlug = strings.TrimSpace(scorekeeperSlug)
	if scorekeeperSlug == "" {
		return nil, nil
	}

	id, err := sk.Utility.ConvertSlugToID(ctx, scorekeeperSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return sk.DetailsByID(ctx, id)
}

// RandomID returns a scorekeeper ID chosen uniformly at random.
func (sk *Scorekeeper) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT scorekeeperid FROM ww_scorekeepers
               WHERE scorekeeperslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := sk.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomSlug returns a scorekeeper slug string chosen uniformly at random.
func (sk *Scorekeeper) RandomSlug(ctx context.Context) (string, error) {
	const q = `SELECT scorekeeperslug FROM ww_scorekeepers
               WHERE scorekeeperslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var s string
	err := sk.db.QueryRowContext(ctx, q).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// Random returns the basic record for a randomly selected scorekeeper.
func (sk *Scorekeeper) Random(ctx context.Context) (*Info, error) {
	id, err := sk.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return sk.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected
// scorekeeper.
func (sk *Scorekeeper) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := sk.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return sk.DetailsByID(ctx, id)
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
               FROM ww_scorekeeperpronounsmap skpm
               JOIN ww_pronouns p ON p.pronounsid = skpm.pronounsid
               WHERE skpm.scorekeeperid = ?
               ORDER BY skpm.scorekeeperpronounsmapid ASC`
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
