package show

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/wwdtm/stats/internal/validation"
	"github.com/wwdtm/stats/location"
)

// LocationInfo is the recording location embedded in show details.
type LocationInfo struct {
	ID    int64   `json:"id"`
	Slug  string  `json:"slug"`
	City  *string `json:"city"`
	State *string `json:"state"`
	Venue *string `json:"venue"`
}

// HostInfo is the host embedded in show details. Guest is set when the host
// filled in as a guest host.
type HostInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Guest bool   `json:"guest"`
}

// ScorekeeperInfo is the scorekeeper embedded in show details.
type ScorekeeperInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Guest       bool    `json:"guest"`
	Description *string `json:"description"`
}

// CoreInfo is the core show detail record before panelist, Bluff and guest
// information is attached.
type CoreInfo struct {
	Info
	Description *string         `json:"description"`
	Notes       *string         `json:"notes"`
	Location    LocationInfo    `json:"location"`
	Host        HostInfo        `json:"host"`
	Scorekeeper ScorekeeperInfo `json:"scorekeeper"`
}

// PanelistInfo is one panelist row embedded in show details, ordered by
// score. ScoreDecimal is only populated when decimal scores are enabled.
type PanelistInfo struct {
	ID                    int64            `json:"id"`
	Name                  string           `json:"name"`
	Slug                  string           `json:"slug"`
	LightningRoundStart   *int64           `json:"lightning_round_start"`
	LightningRoundCorrect *int64           `json:"lightning_round_correct"`
	Score                 *int64           `json:"score"`
	ScoreDecimal          *decimal.Decimal `json:"score_decimal,omitempty"`
	Rank                  *string          `json:"rank"`
}

// BluffPanelist is a panelist referenced from a Bluff the Listener segment.
type BluffPanelist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Bluff is one Bluff the Listener segment, with the panelist whose story
// was chosen and the panelist with the correct story. Either may be nil.
type Bluff struct {
	Segment         int64          `json:"segment"`
	ChosenPanelist  *BluffPanelist `json:"chosen_panelist"`
	CorrectPanelist *BluffPanelist `json:"correct_panelist"`
}

// GuestInfo is one Not My Job guest row embedded in show details.
type GuestInfo struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Score          *int64 `json:"score"`
	ScoreException bool   `json:"score_exception"`
}

// Details is the full show detail record. Panelists, Bluffs and Guests are
// always non-nil.
type Details struct {
	CoreInfo
	Panelists []PanelistInfo `json:"panelists"`
	Bluffs    []Bluff        `json:"bluff"`
	Guests    []GuestInfo    `json:"guests"`
}

// Information assembles per-show detail records.
type Information struct {
	db               *sql.DB
	useDecimalScores bool
}

// NewInformation constructs an Information service with the given DB
// handle.
func NewInformation(db *sql.DB, useDecimalScores bool) *Information {
	return &Information{db: db, useDecimalScores: useDecimalScores}
}

// AllByID returns the full detail record for the requested show ID, or nil
// when no such show exists or the show has no core information on file.
func (i *Information) AllByID(ctx context.Context, id int64) (*Details, error) {
	core, err := i.CoreInfoByID(ctx, id)
	if err != nil || core == nil {
		return nil, err
	}

	panelists, err := i.PanelistInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bluffs, err := i.BluffInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	guests, err := i.GuestInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Details{
		CoreInfo:  *core,
		Panelists: panelists,
		Bluffs:    bluffs,
		Guests:    guests,
	}, nil
}

// CoreInfoByID returns core show information for the requested show ID, or
// nil when the show has no location, host or scorekeeper mapping on file.
func (i *Information) CoreInfoByID(ctx context.Context, id int64) (*CoreInfo, error) {
	if !validation.ValidIntID(id) {
		return nil, nil
	}

	const q = `SELECT s.showid, s.showdate, s.bestof, s.repeatshowid, s.showurl,
               l.locationid, l.city, l.state, l.venue, l.locationslug,
               h.hostid, h.host, h.hostslug, hm.guest AS hostguest,
               sk.scorekeeperid, sk.scorekeeper, sk.scorekeeperslug,
               skm.guest AS scorekeeperguest, skm.description,
               sd.showdescription, sn.shownotes
               FROM ww_shows s
               JOIN ww_showlocationmap lm ON lm.showid = s.showid
               JOIN ww_locations l ON l.locationid = lm.locationid
               JOIN ww_showhostmap hm ON hm.showid = s.showid
               JOIN ww_hosts h ON h.hostid = hm.hostid
               JOIN ww_showskmap skm ON skm.showid = s.showid
               JOIN ww_scorekeepers sk ON sk.scorekeeperid = skm.scorekeeperid
               JOIN ww_showdescriptions sd ON sd.showid = s.showid
               JOIN ww_shownotes sn ON sn.showid = s.showid
               WHERE s.showid = ?`
	var (
		core             CoreInfo
		date             sql.NullTime
		bestOf           int64
		repeatOf         sql.NullInt64
		url              sql.NullString
		city             sql.NullString
		state            sql.NullString
		venue            sql.NullString
		locationSlug     sql.NullString
		hostSlug         sql.NullString
		hostGuest        int64
		scorekeeperSlug  sql.NullString
		scorekeeperGuest int64
		skDescription    sql.NullString
		description      sql.NullString
		notes            sql.NullString
	)
	err := i.db.QueryRowContext(ctx, q, id).Scan(&core.ID, &date, &bestOf,
		&repeatOf, &url,
		&core.Location.ID, &city, &state, &venue, &locationSlug,
		&core.Host.ID, &core.Host.Name, &hostSlug, &hostGuest,
		&core.Scorekeeper.ID, &core.Scorekeeper.Name, &scorekeeperSlug,
		&scorekeeperGuest, &skDescription, &description, &notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	core.Date = date.Time.Format(time.DateOnly)
	core.BestOf = bestOf != 0
	core.RepeatShow = repeatOf.Valid
	if url.Valid && url.String != "" {
		core.URL = &url.String
	}
	if repeatOf.Valid {
		core.OriginalShowID = &repeatOf.Int64
		originalDate, err := NewUtility(i.db).ConvertIDToDate(ctx, repeatOf.Int64)
		if err != nil {
			return nil, err
		}
		if originalDate != "" {
			core.OriginalShowDate = &originalDate
		}
	}

	if city.Valid && city.String != "" {
		core.Location.City = &city.String
	}
	if state.Valid && state.String != "" {
		core.Location.State = &state.String
	}
	if venue.Valid && venue.String != "" {
		core.Location.Venue = &venue.String
	}
	if locationSlug.Valid && locationSlug.String != "" {
		core.Location.Slug = locationSlug.String
	} else {
		core.Location.Slug = location.Slugify(core.Location.ID,
			venue.String, city.String, state.String)
	}

	core.Host.Guest = hostGuest != 0
	if hostSlug.Valid && hostSlug.String != "" {
		core.Host.Slug = hostSlug.String
	} else {
		core.Host.Slug = slug.Make(core.Host.Name)
	}

	core.Scorekeeper.Guest = scorekeeperGuest != 0
	if scorekeeperSlug.Valid && scorekeeperSlug.String != "" {
		core.Scorekeeper.Slug = scorekeeperSlug.String
	} else {
		core.Scorekeeper.Slug = slug.Make(core.Scorekeeper.Name)
	}
	if skDescription.Valid && skDescription.String != "" {
		core.Scorekeeper.Description = &skDescription.String
	}

	if description.Valid {
		if trimmed := strings.TrimSpace(description.String); trimmed != "" {
			core.Description = &trimmed
		}
	}
	if notes.Valid {
		if trimmed := strings.TrimSpace(notes.String); trimmed != "" {
			core.Notes = &trimmed
		}
	}
	return &core, nil
}

// PanelistInfoByID returns panelist rows for the requested show ID, ordered
// by score with ties broken by panel order.
func (i *Information) PanelistInfoByID(ctx context.Context, id int64) ([]PanelistInfo, error) {
	panelists := []PanelistInfo{}
	if !validation.ValidIntID(id) {
		return panelists, nil
	}

	q := `SELECT pm.panelistid, p.panelist, p.panelistslug,
               pm.panelistlrndstart, pm.panelistlrndcorrect,
               pm.panelistscore, pm.showpnlrank
               FROM ww_showpnlmap pm
               JOIN ww_panelists p ON p.panelistid = pm.panelistid
               WHERE pm.showid = ?
               ORDER BY pm.panelistscore DESC, pm.showpnlmapid ASC`
	if i.useDecimalScores {
		q = `SELECT pm.panelistid, p.panelist, p.panelistslug,
               pm.panelistlrndstart, pm.panelistlrndcorrect,
               pm.panelistscore, pm.panelistscore_decimal, pm.showpnlrank
               FROM ww_showpnlmap pm
               JOIN ww_panelists p ON p.panelistid = pm.panelistid
               WHERE pm.showid = ?
               ORDER BY pm.panelistscore_decimal DESC, pm.showpnlmapid ASC`
	}
	rows, err := i.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			panelist     PanelistInfo
			panelistSlug sql.NullString
			start        sql.NullInt64
			correct      sql.NullInt64
			score        sql.NullInt64
			scoreDecimal decimal.NullDecimal
			rank         sql.NullString
		)
		dest := []any{&panelist.ID, &panelist.Name, &panelistSlug,
			&start, &correct, &score}
		if i.useDecimalScores {
			dest = append(dest, &scoreDecimal)
		}
		dest = append(dest, &rank)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if panelistSlug.Valid && panelistSlug.String != "" {
			panelist.Slug = panelistSlug.String
		} else {
			panelist.Slug = slug.Make(panelist.Name)
		}
		if start.Valid {
			panelist.LightningRoundStart = &start.Int64
		}
		if correct.Valid {
			panelist.LightningRoundCorrect = &correct.Int64
		}
		if score.Valid {
			panelist.Score = &score.Int64
		}
		if scoreDecimal.Valid {
			panelist.ScoreDecimal = &scoreDecimal.Decimal
		}
		if rank.Valid && rank.String != "" {
			panelist.Rank = &rank.String
		}
		panelists = append(panelists, panelist)
	}
	return panelists, rows.Err()
}

// BluffInfoByID returns Bluff the Listener segments for the requested show
// ID, ordered by segment number.
func (i *Information) BluffInfoByID(ctx context.Context, id int64) ([]Bluff, error) {
	bluffs := []Bluff{}
	if !validation.ValidIntID(id) {
		return bluffs, nil
	}

	const q = `SELECT blm.segment,
               blm.chosenbluffpnlid, cp.panelist, cp.panelistslug,
               blm.correctbluffpnlid, crp.panelist, crp.panelistslug
               FROM ww_showbluffmap blm
               LEFT JOIN ww_panelists cp ON cp.panelistid = blm.chosenbluffpnlid
               LEFT JOIN ww_panelists crp ON crp.panelistid = blm.correctbluffpnlid
               WHERE blm.showid = ?
               ORDER BY blm.segment ASC`
	rows, err := i.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bluff       Bluff
			chosenID    sql.NullInt64
			chosenName  sql.NullString
			chosenSlug  sql.NullString
			correctID   sql.NullInt64
			correctName sql.NullString
			correctSlug sql.NullString
		)
		if err := rows.Scan(&bluff.Segment, &chosenID, &chosenName,
			&chosenSlug, &correctID, &correctName, &correctSlug); err != nil {
			return nil, err
		}
		bluff.ChosenPanelist = bluffPanelist(chosenID, chosenName, chosenSlug)
		bluff.CorrectPanelist = bluffPanelist(correctID, correctName, correctSlug)
		bluffs = append(bluffs, bluff)
	}
	return bluffs, rows.Err()
}

// GuestInfoByID returns Not My Job guest rows for the requested show ID, in
// appearance order.
func (i *Information) GuestInfoByID(ctx context.Context, id int64) ([]GuestInfo, error) {
	guests := []GuestInfo{}
	if !validation.ValidIntID(id) {
		return guests, nil
	}

	const q = `SELECT gm.guestid, g.guest, g.guestslug,
               gm.guestscore, gm.exception
               FROM ww_showguestmap gm
               JOIN ww_guests g ON g.guestid = gm.guestid
               JOIN ww_shows s ON s.showid = gm.showid
               WHERE gm.showid = ?
               ORDER BY gm.showguestmapid ASC`
	rows, err := i.db.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			guest     GuestInfo
			guestSlug sql.NullString
			score     sql.NullInt64
			exception sql.NullInt64
		)
		if err := rows.Scan(&guest.ID, &guest.Name, &guestSlug,
			&score, &exception); err != nil {
			return nil, err
		}
		if guestSlug.Valid && guestSlug.String != "" {
			guest.Slug = guestSlug.String
		} else {
			guest.Slug = slug.Make(guest.Name)
		}
		if score.Valid {
			guest.Score = &score.Int64
		}
		guest.ScoreException = exception.Valid && exception.Int64 != 0
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}

func bluffPanelist(id sql.NullInt64, name, panelistSlug sql.NullString) *BluffPanelist {
	if !id.Valid || !name.Valid {
		return nil
	}
	p := &BluffPanelist{ID: id.Int64, Name: name.String}
	if panelistSlug.Valid && panelistSlug.String != "" {
		p.Slug = panelistSlug.String
	} else {
		p.Slug = slug.Make(p.Name)
	}
	return p
}
