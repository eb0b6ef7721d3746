package guest

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_guests").
		WithArgs(int64(54)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"guestid", "guest", "guestslug", "guesturl"}).
			AddRow(54, "Tom Hanks", "tom-hanks", nil))
	mock.ExpectQuery("FROM ww_guestpronounsmap").
		WithArgs(int64(54)).
		WillReturnRows(sqlmock.NewRows([]string{"pronouns"}).
			AddRow("he/him"))

	g := New(db)
	info, err := g.ByID(context.Background(), 54)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info == nil {
		t.Fatal("ByID returned nil for existing guest")
	}
	if info.Name != "Tom Hanks" || info.Slug != "tom-hanks" {
		t.Errorf("unexpected info: %+v", info)
	}
	if len(info.Pronouns) != 1 || info.Pronouns[0] != "he/him" {
		t.Errorf("unexpected pronouns: %v", info.Pronouns)
	}
	if info.URL != nil {
		t.Errorf("URL = %v, want nil", *info.URL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_guests").
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"guestid", "guest", "guestslug", "guesturl"}))

	g := New(db)
	info, err := g.ByID(context.Background(), 999999)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info != nil {
		t.Errorf("ByID = %+v, want nil for unknown ID", info)
	}
}

func TestByIDInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	g := New(db)
	info, err := g.ByID(context.Background(), -1)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info != nil {
		t.Errorf("ByID = %+v, want nil for invalid ID", info)
	}
}

func TestBySlugEmpty(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	g := New(db)
	info, err := g.BySlug(context.Background(), "   ")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if info != nil {
		t.Errorf("BySlug = %+v, want nil for blank slug", info)
	}
}

func TestScanInfoSlugFallback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_guests").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"guestid", "guest", "guestslug", "guesturl"}).
			AddRow(7, "Stephen Breyer", nil, nil))
	mock.ExpectQuery("FROM ww_guestpronounsmap").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"pronouns"}))

	g := New(db)
	info, err := g.ByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info.Slug != "stephen-breyer" {
		t.Errorf("Slug = %q, want derived slug", info.Slug)
	}
	if info.Pronouns == nil || len(info.Pronouns) != 0 {
		t.Errorf("Pronouns = %v, want empty non-nil", info.Pronouns)
	}
}

func TestAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_guests").
		WillReturnRows(sqlmock.NewRows(
			[]string{"guestid", "guest", "guestslug", "guesturl"}).
			AddRow(1, "Alice Cooper", "alice-cooper", nil).
			AddRow(2, "Buzz Aldrin", "buzz-aldrin", "https://example.org/buzz"))
	mock.ExpectQuery("FROM ww_guestpronounsmap").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"pronouns"}))
	mock.ExpectQuery("FROM ww_guestpronounsmap").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"pronouns"}).
			AddRow("he/him"))

	g := New(db)
	guests, err := g.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(guests) != 2 {
		t.Fatalf("All returned %d guests, want 2", len(guests))
	}
	if guests[1].URL == nil || *guests[1].URL != "https://example.org/buzz" {
		t.Errorf("unexpected URL: %v", guests[1].URL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
