package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carlog/internal/models"
)

type RecordSQLite struct {
	db *sql.DB
}

func NewRecordSQLite(db *sql.DB) *RecordSQLite { return &RecordSQLite{db: db} }

var _ Records = (*RecordSQLite)(nil)

const (
	insertRecordSQL = `
		INSERT INTO maintenance_records (id, car_id, user_id, part_name, type, date, mileage, cost, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectRecordsByUserSQL = `
		SELECT id, car_id, user_id, part_name, type, date, mileage, cost, notes
		FROM maintenance_records WHERE user_id = ?
	`
	// Car history is shown newest first.
	selectRecordsByCarSQL = `
		SELECT id, car_id, user_id, part_name, type, date, mileage, cost, notes
		FROM maintenance_records WHERE user_id = ? AND car_id = ?
		ORDER BY date DESC
	`
	selectRecordByIDSQL = `
		SELECT id, car_id, user_id, part_name, type, date, mileage, cost, notes
		FROM maintenance_records WHERE id = ? AND user_id = ?
	`
	updateRecordSQL = `
		UPDATE maintenance_records
		SET part_name = ?, type = ?, date = ?, mileage = ?, cost = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`
	deleteRecordSQL = `DELETE FROM maintenance_records WHERE id = ? AND user_id = ?`
)

func (r *RecordSQLite) Create(ctx context.Context, rec models.MaintenanceRecord) error {
	_, err := r.db.ExecContext(ctx, insertRecordSQL,
		rec.ID, rec.CarID, rec.UserID, rec.PartName, string(rec.Type),
		rec.Date, rec.Mileage, rec.Cost, nullableNotes(rec.Notes))
	if err != nil {
		return fmt.Errorf("insert record %q: %w", rec.ID, err)
	}
	return nil
}

// CreateBatch appends a set of records in one transaction, so a CSV import
// lands either whole or not at all.
func (r *RecordSQLite) CreateBatch(ctx context.Context, recs []models.MaintenanceRecord) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.CarID, rec.UserID, rec.PartName, string(rec.Type),
			rec.Date, rec.Mileage, rec.Cost, nullableNotes(rec.Notes)); err != nil {
			return fmt.Errorf("batch insert record %q: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}
	return nil
}

func (r *RecordSQLite) ListByUser(ctx context.Context, userID string) ([]models.MaintenanceRecord, error) {
	return r.list(ctx, selectRecordsByUserSQL, userID)
}

func (r *RecordSQLite) ListByCar(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error) {
	return r.list(ctx, selectRecordsByCarSQL, userID, carID)
}

// GetByID fetches a record scoped to its owner. Returns (nil, nil) if not found.
func (r *RecordSQLite) GetByID(ctx context.Context, userID, id string) (*models.MaintenanceRecord, error) {
	row := r.db.QueryRowContext(ctx, selectRecordByIDSQL, id, userID)
	rec, err := scanRecordRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select record %q: %w", id, err)
	}
	return &rec, nil
}

// Update rewrites the mutable fields in place; id and car_id are preserved.
func (r *RecordSQLite) Update(ctx context.Context, rec models.MaintenanceRecord) error {
	res, err := r.db.ExecContext(ctx, updateRecordSQL,
		rec.PartName, string(rec.Type), rec.Date, rec.Mileage, rec.Cost,
		nullableNotes(rec.Notes), rec.ID, rec.UserID)
	if err != nil {
		return fmt.Errorf("update record %q: %w", rec.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update record: %q not found", rec.ID)
	}
	return nil
}

// Delete removes the record. Returns false when nothing matched.
func (r *RecordSQLite) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRecordSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete record %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete record rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *RecordSQLite) list(ctx context.Context, query string, args ...any) ([]models.MaintenanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := make([]models.MaintenanceRecord, 0, 64)
	for rows.Next() {
		rec, err := scanRecordRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRecordRow(scan func(...any) error) (models.MaintenanceRecord, error) {
	var rec models.MaintenanceRecord
	var typ string
	var notes sql.NullString
	if err := scan(&rec.ID, &rec.CarID, &rec.UserID, &rec.PartName, &typ,
		&rec.Date, &rec.Mileage, &rec.Cost, &notes); err != nil {
		return models.MaintenanceRecord{}, err
	}
	rec.Type = models.ServiceType(typ)
	rec.Notes = notes.String
	return rec, nil
}

func nullableNotes(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
