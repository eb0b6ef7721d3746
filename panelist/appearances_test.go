package panelist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func appearanceRows(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery("AS shows_with_scores").
		WithArgs(id, id, id).
		WillReturnRows(sqlmock.NewRows(
			[]string{"regular_shows", "all_shows", "shows_with_scores"}).
			AddRow(2, 2, 2))
	mock.ExpectQuery("AS most_recent").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(
			[]string{"first_id", "first", "most_recent_id", "most_recent"}).
			AddRow(1100, time.Date(2017, 8, 19, 0, 0, 0, 0, time.UTC),
				1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC)))
}

func TestAppearancesByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	appearanceRows(mock, 14)
	mock.ExpectQuery("pm.panelistscore, pm.showpnlrank").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid",
				"panelistlrndstart", "panelistlrndcorrect",
				"panelistscore", "showpnlrank"}).
			AddRow(1100, time.Date(2017, 8, 19, 0, 0, 0, 0, time.UTC),
				0, nil, 2, 5, 17, "1").
			AddRow(1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC),
				0, nil, 3, 4, 14, "2"))

	a := NewAppearances(db, false)
	info, err := a.ByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Count.RegularShows != 2 || info.Count.ShowsWithScores != 2 {
		t.Errorf("counts = %+v", info.Count)
	}
	if info.Milestones == nil || info.Milestones.First.ShowID != 1100 {
		t.Fatalf("milestones = %+v", info.Milestones)
	}
	if info.Milestones.MostRecent.ShowDate != "2018-10-27" {
		t.Errorf("most recent = %+v", info.Milestones.MostRecent)
	}
	if len(info.Shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(info.Shows))
	}
	if info.Shows[0].Score == nil || *info.Shows[0].Score != 17 {
		t.Errorf("first show = %+v", info.Shows[0])
	}
	if info.Shows[0].ScoreDecimal != nil {
		t.Error("ScoreDecimal set with decimal scores disabled")
	}
}

func TestAppearancesByIDDecimalScores(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	appearanceRows(mock, 14)
	mock.ExpectQuery("pm.panelistscore_decimal, pm.showpnlrank").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid",
				"panelistlrndstart", "panelistlrndcorrect",
				"panelistscore", "panelistscore_decimal", "showpnlrank"}).
			AddRow(1100, time.Date(2017, 8, 19, 0, 0, 0, 0, time.UTC),
				0, nil, 2, 5, 17, "17.50", "1").
			AddRow(1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC),
				0, nil, 3, 4, 14, "14.00", "2"))

	a := NewAppearances(db, true)
	info, err := a.ByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if len(info.Shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(info.Shows))
	}
	first := info.Shows[0]
	if first.ShowID != 1100 || first.Score == nil || *first.Score != 17 {
		t.Errorf("first show = %+v", first)
	}
	if first.ScoreDecimal == nil ||
		!first.ScoreDecimal.Equal(decimal.RequireFromString("17.5")) {
		t.Errorf("first show ScoreDecimal = %v, want 17.5", first.ScoreDecimal)
	}
	if info.Shows[1].ScoreDecimal == nil ||
		!info.Shows[1].ScoreDecimal.Equal(decimal.NewFromInt(14)) {
		t.Errorf("second show ScoreDecimal = %v, want 14", info.Shows[1].ScoreDecimal)
	}
}
