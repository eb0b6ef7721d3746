package show

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func TestBluffInfoByIDEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showbluffmap").
		WithArgs(int64(1162)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"segment", "chosenbluffpnlid", "panelist", "panelistslug",
				"correctbluffpnlid", "panelist", "panelistslug"}))

	i := NewInformation(db, false)
	bluffs, err := i.BluffInfoByID(context.Background(), 1162)
	if err != nil {
		t.Fatalf("BluffInfoByID: %v", err)
	}
	if bluffs == nil {
		t.Fatal("Bluffs is nil, want empty non-nil slice")
	}
	if len(bluffs) != 0 {
		t.Errorf("got %d bluff segments, want 0", len(bluffs))
	}
}

func TestBluffInfoByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showbluffmap").
		WithArgs(int64(1300)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"segment", "chosenbluffpnlid", "panelist", "panelistslug",
				"correctbluffpnlid", "panelist", "panelistslug"}).
			AddRow(1, 14, "Paula Poundstone", "paula-poundstone",
				30, "Mo Rocca", "mo-rocca").
			AddRow(2, nil, nil, nil, 30, "Mo Rocca", "mo-rocca"))

	i := NewInformation(db, false)
	bluffs, err := i.BluffInfoByID(context.Background(), 1300)
	if err != nil {
		t.Fatalf("BluffInfoByID: %v", err)
	}
	if len(bluffs) != 2 {
		t.Fatalf("got %d bluff segments, want 2", len(bluffs))
	}
	if bluffs[0].Segment != 1 || bluffs[0].ChosenPanelist == nil {
		t.Errorf("first segment = %+v", bluffs[0])
	}
	if bluffs[0].ChosenPanelist.Name != "Paula Poundstone" {
		t.Errorf("chosen panelist = %+v", bluffs[0].ChosenPanelist)
	}
	if bluffs[1].ChosenPanelist != nil {
		t.Error("second segment chosen panelist set, want nil")
	}
	if bluffs[1].CorrectPanelist == nil || bluffs[1].CorrectPanelist.Slug != "mo-rocca" {
		t.Errorf("second segment correct panelist = %+v", bluffs[1].CorrectPanelist)
	}
}

func TestPanelistInfoByIDDecimalScores(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("ORDER BY pm.panelistscore_decimal DESC").
		WithArgs(int64(1162)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"panelistid", "panelist", "panelistslug",
				"panelistlrndstart", "panelistlrndcorrect",
				"panelistscore", "panelistscore_decimal", "showpnlrank"}).
			AddRow(14, "Luke Burbank", "luke-burbank", 2, 5, 17, "17.50", "1").
			AddRow(30, "Mo Rocca", "mo-rocca", 3, 4, 14, "14.00", "2"))

	i := NewInformation(db, true)
	panelists, err := i.PanelistInfoByID(context.Background(), 1162)
	if err != nil {
		t.Fatalf("PanelistInfoByID: %v", err)
	}
	if len(panelists) != 2 {
		t.Fatalf("got %d panelists, want 2", len(panelists))
	}
	first := panelists[0]
	if first.ID != 14 || first.Slug != "luke-burbank" {
		t.Errorf("first panelist = %+v", first)
	}
	if first.Score == nil || *first.Score != 17 {
		t.Errorf("first panelist Score = %v, want 17", first.Score)
	}
	if first.ScoreDecimal == nil ||
		!first.ScoreDecimal.Equal(decimal.RequireFromString("17.5")) {
		t.Errorf("first panelist ScoreDecimal = %v, want 17.5", first.ScoreDecimal)
	}
	if panelists[1].Rank == nil || *panelists[1].Rank != "2" {
		t.Errorf("second panelist Rank = %v, want 2", panelists[1].Rank)
	}
}

func TestGuestInfoByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM ww_showguestmap").
		WithArgs(int64(1162)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"guestid", "guest", "guestslug", "guestscore", "exception"}).
			AddRow(54, "Tom Hanks", "tom-hanks", 2, 0).
			AddRow(55, "Stephen Breyer", nil, 3, 1))

	i := NewInformation(db, false)
	guests, err := i.GuestInfoByID(context.Background(), 1162)
	if err != nil {
		t.Fatalf("GuestInfoByID: %v", err)
	}
	if len(guests) != 2 {
		t.Fatalf("got %d guests, want 2", len(guests))
	}
	if guests[0].Score == nil || *guests[0].Score != 2 || guests[0].ScoreException {
		t.Errorf("first guest = %+v", guests[0])
	}
	if guests[1].Slug != "stephen-breyer" {
		t.Errorf("second guest slug = %q, want derived slug", guests[1].Slug)
	}
	if !guests[1].ScoreException {
		t.Error("second guest ScoreException = false, want true")
	}
}
