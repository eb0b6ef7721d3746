package location

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestLocationByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_locations").
		WithArgs(int64(95)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"locationid", "venue", "city", "state", "locationslug",
				"latitude", "longitude"}).
			AddRow(95, "Chase Auditorium", "Chicago", "IL",
				"chase-auditorium-chicago-il", "41.878765", "-87.625894"))

	l := New(db)
	info, err := l.ByID(context.Background(), 95)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info == nil {
		t.Fatal("ByID returned nil for existing location")
	}
	if info.Venue == nil || *info.Venue != "Chase Auditorium" {
		t.Errorf("unexpected venue: %v", info.Venue)
	}
	if info.Latitude == nil {
		t.Fatal("Latitude is nil, want coordinate")
	}
	want := decimal.RequireFromString("41.878765")
	if !info.Latitude.Equal(want) {
		t.Errorf("Latitude = %s, want %s", info.Latitude, want)
	}
}

func TestLocationByIDSlugFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_locations").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"locationid", "venue", "city", "state", "locationslug",
				"latitude", "longitude"}).
			AddRow(12, nil, "Boston", "MA", nil, nil, nil))

	l := New(db)
	info, err := l.ByID(context.Background(), 12)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Slug != "12-boston-ma" {
		t.Errorf("Slug = %q, want derived slug", info.Slug)
	}
	if info.Venue != nil {
		t.Errorf("Venue = %v, want nil", *info.Venue)
	}
	if info.Latitude != nil || info.Longitude != nil {
		t.Error("coordinates set, want nil")
	}
}

func TestRecordingsByIDInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := NewRecordings(db)
	info, err := r.ByID(context.Background(), -5)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Shows == nil {
		t.Error("Shows is nil, want empty non-nil slice")
	}
	if info.Count.AllShows != 0 || info.Count.RegularShows != 0 {
		t.Errorf("unexpected counts: %+v", info.Count)
	}
}
