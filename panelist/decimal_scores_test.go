package panelist

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestFormatScore(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"17.50", "17.5"},
		{"17.00", "17"},
		{"0.5", "0.5"},
		{"-2.50", "-2.5"},
	}
	for _, tc := range cases {
		got := formatScore(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Errorf("formatScore(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGroupedOrderedPairByIDNegativeRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("AS max").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).
			AddRow("-2.50", "0.50"))
	mock.ExpectQuery("GROUP BY pm.panelistscore_decimal").
		WithArgs(int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{"score", "score_count"}).
			AddRow("-2.50", 3).
			AddRow("0.00", 1))

	s := NewDecimalScores(db)
	grouped, err := s.GroupedOrderedPairByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("GroupedOrderedPairByID: %v", err)
	}

	// floor(-2.5) opens the range at -3, so every half-point bucket up
	// through 0.5 exists and the -2.5 count is kept.
	want := []DecimalScoreCount{
		{"-3", 0}, {"-2.5", 3}, {"-2", 0}, {"-1.5", 0},
		{"-1", 0}, {"-0.5", 0}, {"0", 1}, {"0.5", 0},
	}
	if len(grouped) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(grouped), len(want), grouped)
	}
	for i, w := range want {
		if grouped[i] != w {
			t.Errorf("bucket %d = %+v, want %+v", i, grouped[i], w)
		}
	}
}
