package scorekeeper

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConvertSlugToID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT scorekeeperid FROM ww_scorekeepers").
		WithArgs("bill-kurtis").
		WillReturnRows(sqlmock.NewRows([]string{"scorekeeperid"}).AddRow(11))

	u := NewUtility(db)
	id, err := u.ConvertSlugToID(context.Background(), "bill-kurtis")
	if err != nil {
		t.Fatalf("ConvertSlugToID: %v", err)
	}
	if id != 11 {
		t.Errorf("ConvertSlugToID = %d, want 11", id)
	}
}

func TestConvertSlugToIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT scorekeeperid FROM ww_scorekeepers").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"scorekeeperid"}))

	u := NewUtility(db)
	id, err := u.ConvertSlugToID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ConvertSlugToID: %v", err)
	}
	if id != 0 {
		t.Errorf("ConvertSlugToID = %d, want 0 for unknown slug", id)
	}
}

func TestIDExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT scorekeeperid FROM ww_scorekeepers").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"scorekeeperid"}).AddRow(11))
	mock.ExpectQuery("SELECT scorekeeperid FROM ww_scorekeepers").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"scorekeeperid"}))

	u := NewUtility(db)
	exists, err := u.IDExists(context.Background(), 11)
	if err != nil {
		t.Fatalf("IDExists: %v", err)
	}
	if !exists {
		t.Error("IDExists = false, want true")
	}

	exists, err = u.IDExists(context.Background(), 99)
	if err != nil {
		t.Fatalf("IDExists: %v", err)
	}
	if exists {
		t.Error("IDExists = true, want false")
	}
}

func TestIDExistsInvalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	u := NewUtility(db)
	exists, err := u.IDExists(context.Background(), -10)
	if err != nil {
		t.Fatalf("IDExists: %v", err)
	}
	if exists {
		t.Error("IDExists = true for invalid ID, want false")
	}
}
