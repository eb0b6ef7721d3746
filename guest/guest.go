// Package guest retrieves Not My Job guest data from a copy of the Wait Wait
// Stats database.
//
// Not-found lookups and malformed input (out-of-range IDs, blank slugs)
// return nil or empty results rather than errors; errors are reserved for
// driver and connection failures and are returned unwrapped.
package guest

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is the basic guest record.
type Info struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Pronouns []string `json:"pronouns"`
	URL      *string  `json:"url,omitempty"`
}

// Details is a guest record with appearance information attached.
type Details struct {
	Info
	Appearances AppearanceInfo `json:"appearances"`
}

// Guest retrieves guest records. Each method issues one or more sequential
// blocking queries on the connection supplied at construction time; the
// service holds no state of its own beyond the DB handle.
type Guest struct {
	db *sql.DB

	Appearances *Appearances
	Utility     *Utility
}

// New constructs a Guest service with the given DB handle.
func New(db *sql.DB) *Guest {
	return &Guest{
		db:          db,
		Appearances: NewAppearances(db),
		Utility:     NewUtility(db),
	}
}

// All returns the basic record for every guest, sorted by name. Placeholder
// rows (slug "none") are excluded.
func (g *Guest) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT guestid, guest, guestslug, guesturl
               FROM ww_guests
               WHERE guestslug != 'none'
               ORDER BY guest ASC`
	rows, err := g.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range guests {
		if guests[i].Pronouns, err = pronouns(ctx, g.db, guests[i].ID); err != nil {
			return nil, err
		}
	}
	return guests, nil
}

// AllDetails returns the detail record for every guest, sorted by name.
func (g *Guest) AllDetails(ctx context.Context) ([]Details, error) {
	guests, err := g.All(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(guests))
	for _, info := range guests {
		appearances, err := g.Appearances.ByID(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, Details{Info: info, Appearances: appearances})
	}
	return details, nil
}

// AllIDs returns all guest IDs, sorted by guest name.
func (g *Guest) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT guestid FROM ww_guests
               WHERE guestslug != 'none'
               ORDER BY guest ASC`
	rows, err := g.db.QueryContext(ctx, q)
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

// AllSlugs returns all guest slug strings, sorted by guest name.
func (g *Guest) AllSlugs(ctx context.Context) ([]string, error) {
	const q = `SELECT guestslug FROM ww_guests
               WHERE guestslug != 'none'
               ORDER BY guest ASC`
	rows, err := g.db.QueryContext(ctx, q)
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

// ByID returns the basic record for the requested guest ID, or nil when no
// such guest exists.
func (g *Guest) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT guestid, guest, guestslug, guesturl
               FROM ww_guests
               WHERE guestid = ?
               LIMIT 1`
	row := g.db.QueryRowContext(ctx, q, id)
	info, err := scanInfoRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if info.Pronouns, err = pronouns(ctx, g.db, info.ID); err != nil {
		return nil, err
	}
	return info, nil
}

// BySlug returns the basic record for the requested guest slug string, or nil
// when no such guest exists.
func (g *Guest) BySlug(ctx context.Context, guestSlug string) (*Info, error) {
	guestSlug = strings.TrimSpace(guestSlug)
	if guestSlug == "" {
		return nil, nil
	}

	id, err := g.Utility.ConvertSlugToID(ctx, guestSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return g.ByID(ctx, id)
}

// DetailsByID returns the detail record for the requested guest ID, or nil
// when no such guest exists.
func (g *Guest) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	info, err := g.ByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}

	appearances, err := g.Appearances.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Info: *info, Appearances: appearances}, nil
}

// DetailsBySlug returns the detail record for the requested guest slug
// string, or nil when no such guest exists.
func (g *Guest) DetailsBySlug(ctx context.Context, guestSlug string) (*Details, error) {
	guestSlug = strings.TrimSpace(guestSlug)
	if guestSlug == "" {
		return nil, nil
	}

	id, err := g.Utility.ConvertSlugToID(ctx, guestSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return g.DetailsByID(ctx, id)
}

// RandomID returns a guest ID chosen uniformly at random.
func (g *Guest) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT guestid FROM ww_guests
               WHERE guestslug != 'none'
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := g.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomSlug returns a guest slug string chosen uniformly at random.
func (g *Guest) RandomSlug(ctx context.Context) (string, error) {
	const q = `SELECT guestslug FROM ww_guests
               WHERE guestslug != 'none'
               ORDER BY RAND()
               LIMIT 1`
	var s string
	err := g.db.QueryRowContext(ctx, q).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// Random returns the basic record for a randomly selected guest.
func (g *Guest) Random(ctx context.Context) (*Info, error) {
	id, err := g.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return g.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected guest.
func (g *Guest) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := g.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return g.DetailsByID(ctx, id)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfoRow(row rowScanner) (*Info, error) {
	info, err := scanInfo(row)
	if err != nil {
		return nil, err
	}
	return &info, nil
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

// pronouns returns the ordered pronouns list for a guest. Guests without
// pronouns entries yield an empty, non-nil list.
func pronouns(ctx context.Context, db *sql.DB, id int64) ([]string, error) {
	const q = `SELECT p.pronouns
               FROM ww_guestpronounsmap gpm
               JOIN ww_pronouns p ON p.pronounsid = gpm.pronounsid
               WHERE gpm.guestid = ?
               ORDER BY gpm.guestpronounsmapid ASC`
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
