package panelist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestScoresByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showpnlmap").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{"panelistscore"}).
			AddRow(14).
			AddRow(17).
			AddRow(12))

	s := NewScores(db)
	scores, err := s.ByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if len(scores) != 3 || scores[1] != 17 {
		t.Errorf("ByID = %v, want [14 17 12]", scores)
	}
}

func TestScoresByIDInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := NewScores(db)
	scores, err := s.ByID(context.Background(), -3)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if scores == nil || len(scores) != 0 {
		t.Errorf("ByID = %v, want empty non-nil slice", scores)
	}
}

func TestGroupedOrderedPairByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT MIN").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).
			AddRow(10, 14))
	mock.ExpectQuery("COUNT\\(pm.panelistscore\\)").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{"score", "score_count"}).
			AddRow(11, 4).
			AddRow(14, 2))

	s := NewScores(db)
	grouped, err := s.GroupedOrderedPairByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("GroupedOrderedPairByID: %v", err)
	}
	if len(grouped) != 5 {
		t.Fatalf("got %d buckets, want 5 covering 10..14", len(grouped))
	}
	want := []ScoreCount{{10, 0}, {11, 4}, {12, 0}, {13, 0}, {14, 2}}
	for i, pair := range want {
		if grouped[i] != pair {
			t.Errorf("bucket %d = %+v, want %+v", i, grouped[i], pair)
		}
	}
}

func TestOrderedPairByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showpnlmap").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{"showdate", "panelistscore"}).
			AddRow(time.Date(2018, 10, 27, 0, 0, 0, 0, time.UTC), 16).
			AddRow(time.Date(2018, 11, 3, 0, 0, 0, 0, time.UTC), 12))

	s := NewScores(db)
	pairs, err := s.OrderedPairByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("OrderedPairByID: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].Date != "2018-10-27" || pairs[0].Score != 16 {
		t.Errorf("first pair = %+v", pairs[0])
	}
}
