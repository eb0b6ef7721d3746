// Package pronoun retrieves pronoun reference data from a copy of the Wait
// Wait Stats database.
package pronoun

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is one pronouns entry.
type Info struct {
	ID       int64  `json:"id"`
	Pronouns string `json:"pronouns"`
}

// Pronouns retrieves pronouns records.
type Pronouns struct {
	db *sql.DB
}

// New constructs a Pronouns service with the given DB handle.
func New(db *sql.DB) *Pronouns {
	return &Pronouns{db: db}
}

// All returns every pronouns record, ordered by ID.
func (p *Pronouns) All(ctx context.Context) ([]Info, error) {
	const q = `SELECT pronounsid, pronouns FROM ww_pronouns
               ORDER BY pronounsid ASC`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := []Info{}
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.ID, &info.Pronouns); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// AllIDs returns all pronouns IDs, ordered by ID.
func (p *Pronouns) AllIDs(ctx context.Context) ([]int64, error) {
	const q = `SELECT pronounsid FROM ww_pronouns ORDER BY pronounsid ASC`
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

// AllPronouns returns all pronouns strings, ordered by ID.
func (p *Pronouns) AllPronouns(ctx context.Context) ([]string, error) {
	const q = `SELECT pronouns FROM ww_pronouns ORDER BY pronounsid ASC`
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// AllAsMap returns every pronouns record keyed by ID.
func (p *Pronouns) AllAsMap(ctx context.Context) (map[int64]string, error) {
	infos, err := p.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]string, len(infos))
	for _, info := range infos {
		out[info.ID] = info.Pronouns
	}
	return out, nil
}

// ByID returns the pronouns record for the requested ID, or nil when no
// such record exists.
func (p *Pronouns) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT pronounsid, pronouns FROM ww_pronouns
               WHERE pronounsid = ?
               LIMIT 1`
	var info Info
	err := p.db.QueryRowContext(ctx, q, id).Scan(&info.ID, &info.Pronouns)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}
