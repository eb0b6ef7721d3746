package scorekeeper

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAppearancesByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("AS regular_shows").
		WithArgs(int64(11), int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"regular_shows", "all_shows"}).
			AddRow(3, 5))
	mock.ExpectQuery("FROM ww_showskmap").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid",
				"guest", "description"}).
			AddRow(1100, time.Date(2017, 8, 19, 0, 0, 0, 0, time.UTC),
				0, nil, 0, "the legendary anchorman").
			AddRow(1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC),
				0, nil, 1, nil))

	a := NewAppearances(db)
	info, err := a.ByID(context.Background(), 11)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Count.RegularShows != 3 || info.Count.AllShows != 5 {
		t.Errorf("counts = %+v, want {3 5}", info.Count)
	}
	if len(info.Shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(info.Shows))
	}
	first := info.Shows[0]
	if first.Guest || first.Description == nil ||
		*first.Description != "the legendary anchorman" {
		t.Errorf("first appearance = %+v", first)
	}
	if !info.Shows[1].Guest || info.Shows[1].Description != nil {
		t.Errorf("second appearance = %+v", info.Shows[1])
	}
}

func TestAppearancesByIDInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	a := NewAppearances(db)
	info, err := a.ByID(context.Background(), 0)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Shows == nil {
		t.Error("Shows is nil, want empty non-nil slice")
	}
	if info.Count.AllShows != 0 {
		t.Errorf("counts = %+v, want zero", info.Count)
	}
}
