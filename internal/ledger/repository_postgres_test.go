package ledger

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresAppendReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"purchaseId"}).AddRow(12)
	mock.ExpectQuery("INSERT INTO purchases").WillReturnRows(rows)

	rec, err := repo.Append(7, PurchaseRecord{Total: 1000, Method: MethodDeepLink, Timestamp: "2026-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if rec.ID != 12 {
		t.Fatalf("expected assigned id 12, got %d", rec.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresHasPurchased(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(7).WillReturnRows(rows)

	ok, err := repo.HasPurchased(7)
	if err != nil || !ok {
		t.Fatalf("expected true, got %v err %v", ok, err)
	}
}

func TestPostgresListByIDs_CorruptItemsDegradeToEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"purchaseId", "items", "total", "method", "createdAt"}).
		AddRow(12, `{not json at all`, 1000.0, MethodDeepLink, "2026-01-01T00:00:00Z")
	mock.ExpectQuery("SELECT .* FROM purchases").WillReturnRows(rows)

	records, err := repo.ListByIDs([]int{12})
	if err != nil {
		t.Fatalf("corrupt items must not surface an error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != 12 || rec.Total != 1000 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Items == nil || len(rec.Items) != 0 {
		t.Fatalf("expected empty items snapshot, got %+v", rec.Items)
	}
}

func TestPostgresListByIDs_EmptyShortCircuits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// no query expected for an empty id list
	records, err := repo.ListByIDs(nil)
	if err != nil || len(records) != 0 {
		t.Fatalf("expected empty result, got %+v err %v", records, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected query issued: %v", err)
	}
}
