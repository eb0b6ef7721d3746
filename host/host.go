// Package host retrieves host data from a copy of the Wait Wait Stats
// database.
//
// Not-found lookups and malformed input return nil or empty results rather
// than errors; errors are reserved for driver and connection failures.
package host

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is the basic host record.
type Info struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Pronouns []string `json:"pronouns"`
	URL      *string  `json:"url,omitempty"`
}

// Details is a host record with appearance information attached.
type Details struct {
	Info
	Appearances AppearanceInfo `json:"appearances"`
}

// Host retrieves host records.
type Host struct {
	db *sql.DB

	Appearances *Appearances
	Utility     *Utility
}

// New constructs a Host service with the given DB handle.
func New(db *sql.DB) *Host {
	return &Host{
		db:          db,
		Appearances: NewAppearances(db),
		Utility:     NewUtility(db),
	}
}

// All returns the basic record for every host, sorted by name. Placeholder
// rows (slug "tbd") are excluded.
func (h *Host) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT hostid, host, hostslug, hosturl
               FROM ww_hosts
               WHERE hostslug != 'tbd'
               ORDER BY host ASC`
	rows, err := h.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hosts := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range hosts {
		if hosts[i].Pronouns, err = pronouns(ctx, h.db, hosts[i].ID); err != nil {
			return nil, err
		}
	}
	return hosts, nil
}

// AllDetails returns the detail record for every host, sorted by name.
func (h *Host) AllDetails(ctx context.Context) ([]Details, error) {
	hosts, err := h.All(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(hosts))
	for _, info := range hosts {
		appearances, err := h.Appearances.ByID(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, Details{Info: info, Appearances: appearances})
	}
	return details, nil
}

// AllIDs returns all host IDs, sorted by host name.
func (h *Host) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT hostid FROM ww_hosts
               WHERE hostslug != 'tbd'
               ORDER BY host ASC`
	rows, err := h.db.QueryContext(ctx, q)
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

// AllSlugs returns all host slug strings, sorted by host name.
func (h *Host) AllSlugs(ctx context.Context) ([]string, error) {
	const q = `SELECT hostslug FROM ww_hosts
               WHERE hostslug != 'tbd'
               ORDER BY host ASC`
	rows, err := h.db.QueryContext(ctx, q)
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

// ByID returns the basic record for the requested host ID, or nil when no
// such host exists.
func (h *Host) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT hostid, host, hostslug, hosturl
               FROM ww_hosts
               WHERE hostid = ?
               LIMIT 1`
	row := h.db.QueryRowContext(ctx, q, id)
	info, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if info.Pronouns, err = pronouns(ctx, h.db, info.ID); err != nil {
		return nil, err
	}
	return &info, nil
}

// BySlug returns the basic record for the requested host slug string, or nil
// when no such host exists.
func (h *Host) BySlug(ctx context.Context, hostSlug string) (*Info, error) {
	hostSlug = strings.TrimSpace(hostSlug)
	if hostSlug == "" {
		return nil, nil
	}

	id, err := h.Utility.ConvertSlugToID(ctx, hostSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return h.ByID(ctx, id)
}

// DetailsByID returns the detail record for the requested host ID, or nil
// when no such host exists.
func (h *Host) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	info, err := h.ByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}

	appearances, err := h.Appearances.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Info: *info, Appearances: appearances}, nil
}

// DetailsBySlug returns the detail record for the requested host slug string,
// or nil when no such host exists.
func (h *Host) DetailsBySlug(ctx context.Context, hostSlug string) (*Details, error) {
	hostSlug = strings.TrimSpace(hostSlug)
	if hostSlug == "" {
		return nil, nil
	}

	id, err := h.Utility.ConvertSlugToID(ctx, hostSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return h.DetailsByID(ctx, id)
}

// RandomID returns a host ID chosen uniformly at random.
func (h *Host) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT hostid FROM ww_hosts
               WHERE hostslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := h.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomSlug returns a host slug string chosen uniformly at random.
func (h *Host) RandomSlug(ctx context.Context) (string, error) {
	const q = `SELECT hostslug FROM ww_hosts
               WHERE hostslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var s string
	err := h.db.QueryRowContext(ctx, q).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// Random returns the basic record for a randomly selected host.
func (h *Host) Random(ctx context.Context) (*Info, error) {
	id, err := h.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return h.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected host.
func (h *Host) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := h.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return h.DetailsByID(ctx, id)
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
               FROM ww_hostpronounsmap hpm
               JOIN ww_pronouns p ON p.pronounsid = hpm.pronounsid
               WHERE hpm.hostid = ?
               ORDER BY hpm.hostpronounsmapid ASC`
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
