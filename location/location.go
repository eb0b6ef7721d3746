// Package location retrieves recording location data from a copy of the Wait
// Wait Stats database.
//
// Not-found lookups and malformed input return nil or empty results rather
// than errors; errors are reserved for driver and connection failures.
package location

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wwdtm/stats/internal/validation"
)

// Info is the basic location record. Venue, city and state are nullable in
// the schema; coordinates are present only for venues that have been
// geocoded.
type Info struct {
	ID        int64            `json:"id"`
	Venue     *string          `json:"venue"`
	City      *string          `json:"city"`
	State     *string          `json:"state"`
	Slug      string           `json:"slug"`
	Latitude  *decimal.Decimal `json:"latitude,omitempty"`
	Longitude *decimal.Decimal `json:"longitude,omitempty"`
}

// Details is a location record with recording information attached.
type Details struct {
	Info
	Recordings RecordingInfo `json:"recordings"`
}

// Location retrieves location records. Listings default to state/city/venue
// ordering; passing sortByVenue orders by venue first.
type Location struct {
	db *sql.DB

	Recordings *Recordings
	Utility    *Utility
}

// New constructs a Location service with the given DB handle.
func New(db *sql.DB) *Location {
	return &Location{
		db:         db,
		Recordings: NewRecordings(db),
		Utility:    NewUtility(db),
	}
}

func listOrder(sortByVenue bool) string {
	if sortByVenue {
		return " ORDER BY venue ASC, city ASC, state ASC"
	}
	return " ORDER BY state ASC, city ASC, venue ASC"
}

// All returns the basic record for every location. Placeholder rows (slug
// "tbd") are excluded.
func (l *Location) All(ctx context.Context, sortByVenue bool) ([]Info, error) {
	q := `SELECT locationid, venue, city, state, locationslug,
               latitude, longitude
               FROM ww_locations
               WHERE locationslug != 'tbd'` + listOrder(sortByVenue)
	rows, err := l.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []Info{}
	for rows.Next() {
		info, err := scanInfo(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, info)
	}
	return locations, rows.Err()
}

// AllDetails returns the detail record for every location.
func (l *Location) AllDetails(ctx context.Context, sortByVenue bool) ([]Details, error) {
	locations, err := l.All(ctx, sortByVenue)
	if err != nil {
		return nil, err
	}

	details := make([]Details, 0, len(locations))
	for _, info := range locations {
		recordings, err := l.Recordings.ByID(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, Details{Info: info, Recordings: recordings})
	}
	return details, nil
}

// AllIDs returns all location IDs.
func (l *Location) AllIDs(ctx context.Context, sortByVenue bool) ([]int64, error) {
	q := `SELECT locationid FROM ww_locations
               WHERE locationslug != 'tbd'` + listOrder(sortByVenue)
	rows, err := l.db.QueryContext(ctx, q)
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

// AllSlugs returns all location slug strings.
func (l *Location) AllSlugs(ctx context.Context, sortByVenue bool) ([]string, error) {
	q := `SELECT locationslug FROM ww_locations
               WHERE locationslug != 'tbd'` + listOrder(sortByVenue)
	rows, err := l.db.QueryContext(ctx, q)
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

// ByID returns the basic record for the requested location ID, or nil when
// no such location exists.
func (l *Location) ByID(ctx context.Context, id int64) (*Info, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT locationid, venue, city, state, locationslug,
               latitude, longitude
               FROM ww_locations
               WHERE locationid = ?
               LIMIT 1`
	row := l.db.QueryRowContext(ctx, q, id)
	info, err := scanInfo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

// BySlug returns the basic record for the requested location slug string, or
// nil when no such location exists.
func (l *Location) BySlug(ctx context.Context, locationSlug string) (*Info, error) {
	locationSlug = strings.TrimSpace(locationSlug)
	if locationSlug == "" {
		return nil, nil
	}

	id, err := l.Utility.ConvertSlugToID(ctx, locationSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return l.ByID(ctx, id)
}

// DetailsByID returns the detail record for the requested location ID, or
// nil when no such location exists.
func (l *Location) DetailsByID(ctx context.Context, id int64) (*Details, error) {
	info, err := l.ByID(ctx, id)
	if err != nil || info == nil {
		return nil, err
	}

	recordings, err := l.Recordings.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Info: *info, Recordings: recordings}, nil
}

// DetailsBySlug returns the detail record for the requested location slug
// string, or nil when no such location exists.
func (l *Location) DetailsBySlug(ctx context.Context, locationSlug string) (*Details, error) {
	locationSlug = strings.TrimSpace(locationSlug)
	if locationSlug == "" {
		return nil, nil
	}

	id, err := l.Utility.ConvertSlugToID(ctx, locationSlug)
	if err != nil || id == 0 {
		return nil, err
	}
	return l.DetailsByID(ctx, id)
}

// RandomID returns a location ID chosen uniformly at random.
func (l *Location) RandomID(ctx context.Context) (int64, error) {
	const q = `SELECT locationid FROM ww_locations
               WHERE locationslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var id int64
	err := l.db.QueryRowContext(ctx, q).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

// RandomSlug returns a location slug string chosen uniformly at random.
func (l *Location) RandomSlug(ctx context.Context) (string, error) {
	const q = `SELECT locationslug FROM ww_locations
               WHERE locationslug != 'tbd'
               ORDER BY RAND()
               LIMIT 1`
	var s string
	err := l.db.QueryRowContext(ctx, q).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return s, err
}

// Random returns the basic record for a randomly selected location.
func (l *Location) Random(ctx context.Context) (*Info, error) {
	id, err := l.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return l.ByID(ctx, id)
}

// RandomDetails returns the detail record for a randomly selected location.
func (l *Location) RandomDetails(ctx context.Context) (*Details, error) {
	id, err := l.RandomID(ctx)
	if err != nil || id == 0 {
		return nil, err
	}
	return l.DetailsByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfo(row rowScanner) (Info, error) {
	var (
		info      Info
		venue     sql.NullString
		city      sql.NullString
		state     sql.NullString
		infoSlug  sql.NullString
		latitude  decimal.NullDecimal
		longitude decimal.NullDecimal
	)
	if err := row.Scan(&info.ID, &venue, &city, &state, &infoSlug,
		&latitude, &longitude); err != nil {
		return Info{}, err
	}
	if venue.Valid && venue.String != "" {
		info.Venue = &venue.String
	}
	if city.Valid && city.String != "" {
		info.City = &city.String
	}
	if state.Valid && state.String != "" {
		info.State = &state.String
	}
	if infoSlug.Valid && infoSlug.String != "" {
		info.Slug = infoSlug.String
	} else {
		info.Slug = Slugify(info.ID, strValue(info.Venue), strValue(info.City),
			strValue(info.State))
	}
	if latitude.Valid {
		info.Latitude = &latitude.Decimal
	}
	if longitude.Valid {
		info.Longitude = &longitude.Decimal
	}
	return info, nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
