package host

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
		WithArgs(int64(2), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"regular_shows", "all_shows"}).
			AddRow(4, 6))
	mock.ExpectQuery("FROM ww_showhostmap").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid", "guest"}).
			AddRow(1100, time.Date(2017, 8, 19, 0, 0, 0, 0, time.UTC), 0, nil, 1).
			AddRow(1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC), 0, nil, 0))

	a := NewAppearances(db)
	info, err := a.ByID(context.Background(), 2)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Count.RegularShows != 4 || info.Count.AllShows != 6 {
		t.Errorf("counts = %+v, want {4 6}", info.Count)
	}
	if len(info.Shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(info.Shows))
	}
	if !info.Shows[0].Guest {
		t.Error("first appearance Guest = false, want true")
	}
	if info.Shows[1].Date != "2018-10-27" || info.Shows[1].Guest {
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
	info, err := a.ByID(context.Background(), -1)
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
