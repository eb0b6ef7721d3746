package panelist

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/wwdtm/stats/internal/validation"
)

// Utility resolves panelist IDs and slug strings against each other. Slug
// comparison is a case-sensitive exact match on the slug column.
type Utility struct {
	db *sql.DB
}

// NewUtility constructs a Utility service with the given DB handle.
func NewUtility(db *sql.DB) *Utility {
	return &Utility{db: db}
}

// ConvertIDToSlug returns the slug string for the requested panelist ID, or
// an empty string when no match is found.
func (u *Utility) ConvertIDToSlug(ctx context.Context, id int64) (string, error) {
	if !validation.ValidIntID(id) {
		return "", nil
	}

	const q = `SELECT panelistslug FROM ww_panelists WHERE panelistid = ? LIMIT 1`
	var s string
	err := u.db.QueryRowContext(ctx, q, id).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// ConvertSlugToID returns the panelist ID for the requested slug string, or
// zero when no match is found.
func (u *Utility) ConvertSlugToID(ctx context.Context, panelistSlug string) (int64, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return 0, nil
	}

	const q = `SELECT panelistid FROM ww_panelists WHERE panelistslug = ? LIMIT 1`
	var id int64
	err := u.db.QueryRowContext(ctx, q, panelistSlug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// IDExists reports whether the requested panelist ID exists.
func (u *Utility) IDExists(ctx context.Context, id int64) (bool, error) {
	if !validation.ValidIntID(id) {
		return false, nil
	}

	const q = `SELECT panelistid FROM ww_panelists WHERE panelistid = ? LIMIT 1`
	var found int64
	err := u.db.QueryRowContext(ctx, q, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// SlugExists reports whether the requested panelist slug string exists.
func (u *Utility) SlugExists(ctx context.Context, panelistSlug string) (bool, error) {
	panelistSlug = strings.TrimSpace(panelistSlug)
	if panelistSlug == "" {
		return false, nil
	}

	const q = `SELECT panelistslug FROM ww_panelists WHERE panelistslug = ? LIMIT 1`
	var found string
	err := u.db.QueryRowContext(ctx, q, panelistSlug).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
