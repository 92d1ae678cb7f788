package repository

import (
	"regexp"
	"testing"

	"carlog/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRecordCreate_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(insertRecordSQL)).
		WithArgs("r1", "c1", "u1", "Óleo", "REPLACEMENT", "2024-01-05", 48000, 150.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(ctx(t), models.MaintenanceRecord{
		ID: "r1", CarID: "c1", UserID: "u1", PartName: "Óleo",
		Type: models.TypeReplacement, Date: "2024-01-05", Mileage: 48000, Cost: 150,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	expectationsMet(t, mock)
}

func TestRecordCreateBatch_OneTransaction(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertRecordSQL))
	prep.ExpectExec().
		WithArgs("r1", "c1", "u1", "Óleo", "REPLACEMENT", "2024-01-05", 48000, 0.0, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("r2", "c1", "u1", "Correia", "REVISION", "2024-02-01", 52000, 250.0, "na oficina").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateBatch(ctx(t), []models.MaintenanceRecord{
		{ID: "r1", CarID: "c1", UserID: "u1", PartName: "Óleo", Type: models.TypeReplacement, Date: "2024-01-05", Mileage: 48000},
		{ID: "r2", CarID: "c1", UserID: "u1", PartName: "Correia", Type: models.TypeRevision, Date: "2024-02-01", Mileage: 52000, Cost: 250, Notes: "na oficina"},
	})
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	expectationsMet(t, mock)
}

func TestRecordCreateBatch_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	if err := repo.CreateBatch(ctx(t), nil); err != nil {
		t.Fatalf("CreateBatch(nil): %v", err)
	}
	expectationsMet(t, mock)
}

func TestRecordListByCar_NullNotesMapped(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	rows := sqlmock.NewRows([]string{"id", "car_id", "user_id", "part_name", "type", "date", "mileage", "cost", "notes"}).
		AddRow("r2", "c1", "u1", "Correia", "REVISION", "2024-02-01", 52000, 250.0, "na oficina").
		AddRow("r1", "c1", "u1", "Óleo", "REPLACEMENT", "2024-01-05", 48000, 150.0, nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectRecordsByCarSQL)).
		WithArgs("u1", "c1").
		WillReturnRows(rows)

	recs, err := repo.ListByCar(ctx(t), "u1", "c1")
	if err != nil {
		t.Fatalf("ListByCar: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Notes != "na oficina" {
		t.Errorf("expected notes kept, got %q", recs[0].Notes)
	}
	if recs[1].Notes != "" {
		t.Errorf("expected NULL notes mapped to empty, got %q", recs[1].Notes)
	}
	if recs[1].Type != models.TypeReplacement {
		t.Errorf("expected type scanned, got %q", recs[1].Type)
	}
	expectationsMet(t, mock)
}

func TestRecordDelete_ReportsWhetherRowMatched(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteRecordSQL)).
		WithArgs("r1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteRecordSQL)).
		WithArgs("ghost", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(ctx(t), "u1", "r1")
	if err != nil || !ok {
		t.Fatalf("Delete existing: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(ctx(t), "u1", "ghost")
	if err != nil || ok {
		t.Fatalf("Delete missing: ok=%v err=%v", ok, err)
	}
	expectationsMet(t, mock)
}

func TestRecordUpdate_MissingRecord(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewRecordSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(updateRecordSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(ctx(t), models.MaintenanceRecord{ID: "ghost", UserID: "u1"})
	if err == nil {
		t.Fatal("expected error for missing record")
	}
	expectationsMet(t, mock)
}
