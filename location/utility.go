package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/wwdtm/stats/internal/validation"
)

// Utility resolves location IDs and slug strings against each other. Slug
// comparison is a case-sensitive exact match on the slug column.
type Utility struct {
	db *sql.DB
}

// NewUtility constructs a Utility service with the given DB handle.
func NewUtility(db *sql.DB) *Utility {
	return &Utility{db: db}
}

// Slugify derives a slug string for a location from whichever of venue, city
// and state are available, falling back to an ID-based slug when none are.
func Slugify(id int64, venue, city, state string) string {
	venue = strings.TrimSpace(venue)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)

	switch {
	case venue != "" && city != "" && state != "":
		return slug.Make(fmt.Sprintf("%s %s %s", venue, city, state))
	case venue != "" && city != "":
		return slug.Make(fmt.Sprintf("%s %s", venue, city))
	case venue != "":
		return slug.Make(fmt.Sprintf("%d %s", id, venue))
	case city != "" && state != "":
		return slug.Make(fmt.Sprintf("%d %s %s", id, city, state))
	default:
		return fmt.Sprintf("location-%d", id)
	}
}

// ConvertIDToSlug returns the slug string for the requested location ID, or
// an empty string when no match is found.
func (u *Utility) ConvertIDToSlug(ctx context.Context, id int64) (string, error) {
	if !validation.ValidIntID(id) {
		return "", nil
	}

	const q = `SELECT locationslug FROM ww_locations WHERE locationid = ? LIMIT 1`
	var s string
	err := u.db.QueryRowContext(ctx, q, id).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// ConvertSlugToID returns the location ID for the requested slug string, or
// zero when no match is found.
func (u *Utility) ConvertSlugToID(ctx context.Context, locationSlug string) (int64, error) {
	locationSlug = strings.TrimSpace(locationSlug)
	if locationSlug == "" {
		return 0, nil
	}

	const q = `SELECT locationid FROM ww_locations WHERE locationslug = ? LIMIT 1`
	var id int64
	err := u.db.QueryRowContext(ctx, q, locationSlug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// IDExists reports whether the requested location ID exists.
func (u *Utility) IDExists(ctx context.Context, id int64) (bool, error) {
	if !validation.ValidIntID(id) {
		return false, nil
	}

	const q = `SELECT locationid FROM ww_locations WHERE locationid = ? LIMIT 1`
	var found int64
	err := u.db.QueryRowContext(ctx, q, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// SlugExists reports whether the requested location slug string exists.
func (u *Utility) SlugExists(ctx context.Context, locationSlug string) (bool, error) {
	locationSlug = strings.TrimSpace(locationSlug)
	if locationSlug == "" {
		return false, nil
	}

	const q = `SELECT locationslug FROM ww_locations WHERE locationslug = ? LIMIT 1`
	var found string
	err := u.db.QueryRowContext(ctx, q, locationSlug).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}
