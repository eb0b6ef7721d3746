package scorekeeper

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/wwdtm/stats/internal/validation"
)

// Utility resolves scorekeeper IDs and slug strings against each other. Slug
// comparison is a case-sensitive exact match on the slug column.
type Utility struct {
	db *sql.DB
}

// NewUtility constructs a Utility service with the given DB handle.
func NewUtility(db *sql.DB) *Utility {
	return &Utility{db: db}
}

// ConvertIDToSlug returns the slug string for the requested scorekeeper ID,
// or an empty string when no match is found.
func (u *Utility) ConvertIDToSlug(ctx context.Context, id int64) (string, error) {
	if !validation.ValidIntID(id) {
		return "", nil
	}

	const q = `SELECT scorekeeperslug FROM ww_scorekeepers WHERE scorekeeperid = ? LIMIT 1`
	var s string
	err := u.db.QueryRowContext(ctx, q, id).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// ConvertSlugToID returns the scorekeeper ID for the requested slug string,
// or zero when no match is found.
func (u *Utility) ConvertSlugToID(ctx context.Context, scorekeeperSlug string) (int64, error) {
	scorekeeperSlug = strings.TrimSpace(scorekeeperSlug)
	if scorekeeperSlug == "" {
		return 0, nil
	}

	const q = `SELECT scorekeeperid FROM ww_scorekeepers WHERE scorekeeperslug = ? LIMIT 1`
	var id int64
	err := u.db.QueryRowContext(ctx, q, scorekeeperSlug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// IDExists reports whether the requested scorekeeper ID exists.
func (u *Utility) IDExists(ctx context.Context, id int64) (bool, error) {
	if !validation.ValidIntID(id) {
		return false, nil
	}

	const q = `SELECT scorekeeperid FROM ww_scorekeepers WHERE scorekeeperid = ? LIMIT 1`
	var found int64
	err := u.db.QueryRowContext(ctx, q, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// SlugExists reports whether the requested scorekeeper slug string exists.
func (u *Utility) SlugExists(ctx context.Context, scorekeeperSlug string) (bool, error) {
	scorekeeperSlug = strings.TrimSpace(scorekeeperSlug)
	if scorekeeperSlug == "" {
		return false, nil
	}

	const q = `SELECT scorekeeperslug FROM ww_scorekeepers WHERE scorekeeperslug = ? LIMIT 1`
	var found string
	err := u.db.QueryRowContext(ctx, q, scorekeeperSlug).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
