package guest

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

	mock.ExpectQuery("SELECT guestid FROM ww_guests").
		WithArgs("tom-hanks").
		WillReturnRows(sqlmock.NewRows([]string{"guestid"}).AddRow(54))

	u := NewUtility(db)
	id, err := u.ConvertSlugToID(context.Background(), "tom-hanks")
	if err != nil {
		t.Fatalf("ConvertSlugToID: %v", err)
	}
	if id != 54 {
		t.Errorf("ConvertSlugToID = %d, want 54", id)
	}
}

func TestConvertSlugToIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT guestid FROM ww_guests").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"guestid"}))

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

	mock.ExpectQuery("SELECT guestid FROM ww_guests").
		WithArgs(int64(54)).
		WillReturnRows(sqlmock.NewRows([]string{"guestid"}).AddRow(54))
	mock.ExpectQuery("SELECT guestid FROM ww_guests").
		WithArgs(int64(55)).
		WillReturnRows(sqlmock.NewRows([]string{"guestid"}))

	u := NewUtility(db)
	exists, err := u.IDExists(context.Background(), 54)
	if err != nil {
		t.Fatalf("IDExists: %v", err)
	}
	if !exists {
		t.Error("IDExists = false, want true")
	}

	exists, err = u.IDExists(context.Background(), 55)
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
