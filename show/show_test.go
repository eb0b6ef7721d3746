package show

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestByDateStringInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, false)
	for _, date := range []string{"not-a-date", "2018/10/27", "2018-13-01", ""} {
		info, err := s.ByDateString(context.Background(), date)
		if err != nil {
			t.Fatalf("ByDateString(%q): %v", date, err)
		}
		if info != nil {
			t.Errorf("ByDateString(%q) = %+v, want nil", date, info)
		}
	}
}

func TestByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_shows").
		WithArgs(int64(1162)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid", "showurl"}).
			AddRow(1162, time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC), 0, nil, nil))

	s := New(db, false)
	info, err := s.ByID(context.Background(), 1162)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if info == nil {
		t.Fatal("ByID returned nil for existing show")
	}
	if info.Date != "2018-10-27" || info.BestOf || info.RepeatShow {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.OriginalShowID != nil || info.OriginalShowDate != nil {
		t.Error("original show fields set for non-repeat show")
	}
}

func TestByIDRepeatShow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_shows").
		WithArgs(int64(1200)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"showid", "showdate", "bestof", "repeatshowid", "showurl"}).
			AddRow(1200, time.Date(2019, 7, 6, 0, 0, 0, 0, time.UTC), 0, 1162, nil))
	mock.ExpectQuery("SELECT showdate FROM ww_shows").
		WithArgs(int64(1162)).
		WillReturnRows(sqlmock.NewRows([]string{"showdate"}).
			AddRow(time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC)))

	s := New(db, false)
	info, err := s.ByID(context.Background(), 1200)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if !info.RepeatShow {
		t.Error("RepeatShow = false, want true")
	}
	if info.OriginalShowID == nil || *info.OriginalShowID != 1162 {
		t.Errorf("OriginalShowID = %v, want 1162", info.OriginalShowID)
	}
	if info.OriginalShowDate == nil || *info.OriginalShowDate != "2018-10-27" {
		t.Errorf("OriginalShowDate = %v, want 2018-10-27", info.OriginalShowDate)
	}
}

func TestScoresByYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showpnlmap").
		WithArgs(2018).
		WillReturnRows(sqlmock.NewRows([]string{"date", "score"}).
			AddRow(time.Date(2018, 1, 6, 0, 0, 0, 0, time.UTC), 11).
			AddRow(time.Date(2018, 1, 6, 0, 0, 0, 0, time.UTC), 14).
			AddRow(time.Date(2018, 1, 6, 0, 0, 0, 0, time.UTC), 17).
			AddRow(time.Date(2018, 1, 13, 0, 0, 0, 0, time.UTC), 12).
			AddRow(time.Date(2018, 1, 13, 0, 0, 0, 0, time.UTC), 13))

	s := New(db, false)
	shows, err := s.ScoresByYear(context.Background(), 2018)
	if err != nil {
		t.Fatalf("ScoresByYear: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("got %d shows, want 2", len(shows))
	}
	if shows[0].Date != "2018-01-06" || len(shows[0].Scores) != 3 {
		t.Errorf("first show = %+v", shows[0])
	}
	if !shows[0].Scores[2].Equal(decimal.NewFromInt(17)) {
		t.Errorf("third score = %s, want 17", shows[0].Scores[2])
	}
	if shows[1].Date != "2018-01-13" || len(shows[1].Scores) != 2 {
		t.Errorf("second show = %+v", shows[1])
	}
}

func TestScoresByYearInvalidYear(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db, false)
	shows, err := s.ScoresByYear(context.Background(), 99)
	if err != nil {
		t.Fatalf("ScoresByYear: %v", err)
	}
	if shows == nil || len(shows) != 0 {
		t.Errorf("ScoresByYear = %v, want empty non-nil slice", shows)
	}
}
