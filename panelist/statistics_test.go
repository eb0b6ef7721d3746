package panelist

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSummarize(t *testing.T) {
	scores := []float64{14, 17, 12, 19, 14}
	got := summarize(scores)

	if got.Minimum != 12 {
		t.Errorf("Minimum = %v, want 12", got.Minimum)
	}
	if got.Maximum != 19 {
		t.Errorf("Maximum = %v, want 19", got.Maximum)
	}
	if got.Total != 76 {
		t.Errorf("Total = %v, want 76", got.Total)
	}
	if got.Mean != 15.2 {
		t.Errorf("Mean = %v, want 15.2", got.Mean)
	}
	if got.Median != 14 {
		t.Errorf("Median = %v, want 14", got.Median)
	}
	// population standard deviation of the set, rounded to 4 places
	if got.StandardDeviation != 2.4819 {
		t.Errorf("StandardDeviation = %v, want 2.4819", got.StandardDeviation)
	}
}

func TestMedianEvenCount(t *testing.T) {
	if got := median([]float64{10, 12, 14, 18}); got != 13 {
		t.Errorf("median = %v, want 13", got)
	}
}

func TestRound4(t *testing.T) {
	if got := round4(33.333333333); got != 33.3333 {
		t.Errorf("round4 = %v, want 33.3333", got)
	}
	if got := round4(66.66666); got != 66.6667 {
		t.Errorf("round4 = %v, want 66.6667", got)
	}
}

func TestStatisticsByIDNoScores(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showpnlmap").
		WithArgs(int64(30)).
		WillReturnRows(sqlmock.NewRows([]string{"panelistscore"}))

	st := NewStatistics(db, false)
	statistics, err := st.ByID(context.Background(), 30)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if statistics != nil {
		t.Errorf("ByID = %+v, want nil for panelist with no scores", statistics)
	}
}

func TestBluffsByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showbluffmap").
		WithArgs(int64(14), int64(14)).
		WillReturnRows(sqlmock.NewRows([]string{"chosen", "correct"}).
			AddRow(61, 49))

	st := NewStatistics(db, false)
	bluffs, err := st.BluffsByID(context.Background(), 14)
	if err != nil {
		t.Fatalf("BluffsByID: %v", err)
	}
	if bluffs.Chosen != 61 || bluffs.Correct != 49 {
		t.Errorf("BluffsByID = %+v, want {61 49}", bluffs)
	}
}
