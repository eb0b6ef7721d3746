package show

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestDateFromParts(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month int
		day   int
		ok    bool
	}{
		{"valid date", 2018, 10, 27, true},
		{"leap day", 2020, 2, 29, true},
		{"non-leap february 29", 2019, 2, 29, false},
		{"february 30", 2020, 2, 30, false},
		{"month 13", 2020, 13, 1, false},
		{"day zero", 2020, 6, 0, false},
		{"two digit year", 98, 10, 27, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := dateFromParts(tc.year, tc.month, tc.day)
			if ok != tc.ok {
				t.Errorf("dateFromParts(%d, %d, %d) ok = %v, want %v",
					tc.year, tc.month, tc.day, ok, tc.ok)
			}
		})
	}
}

func TestConvertDateToID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT showid FROM ww_shows").
		WithArgs("2018-10-27").
		WillReturnRows(sqlmock.NewRows([]string{"showid"}).AddRow(1162))

	u := NewUtility(db)
	id, err := u.ConvertDateToID(context.Background(), 2018, 10, 27)
	if err != nil {
		t.Fatalf("ConvertDateToID: %v", err)
	}
	if id != 1162 {
		t.Errorf("ConvertDateToID = %d, want 1162", id)
	}
}

func TestConvertDateToIDInvalidDate(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	u := NewUtility(db)
	id, err := u.ConvertDateToID(context.Background(), 2020, 2, 30)
	if err != nil {
		t.Fatalf("ConvertDateToID: %v", err)
	}
	if id != 0 {
		t.Errorf("ConvertDateToID = %d, want 0 for impossible date", id)
	}
}

func TestDateExistsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT showid FROM ww_shows").
		WithArgs("1997-01-04").
		WillReturnRows(sqlmock.NewRows([]string{"showid"}))

	u := NewUtility(db)
	exists, err := u.DateExists(context.Background(), 1997, 1, 4)
	if err != nil {
		t.Fatalf("DateExists: %v", err)
	}
	if exists {
		t.Error("DateExists = true, want false")
	}
}
