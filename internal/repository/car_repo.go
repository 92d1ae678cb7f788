package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carlog/internal/models"
)

type CarSQLite struct {
	db *sql.DB
}

func NewCarSQLite(db *sql.DB) *CarSQLite { return &CarSQLite{db: db} }

var _ Cars = (*CarSQLite)(nil)

const (
	insertCarSQL = `
		INSERT INTO cars (id, user_id, make, model, year, plate, current_mileage, color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectCarsByUserSQL = `
		SELECT id, user_id, make, model, year, plate, current_mileage, color
		FROM cars WHERE user_id = ?
	`
	selectCarByIDSQL = `
		SELECT id, user_id, make, model, year, plate, current_mileage, color
		FROM cars WHERE id = ? AND user_id = ?
	`
	updateCarMileageSQL  = `UPDATE cars SET current_mileage = ? WHERE id = ?`
	deleteCarRecordsSQL  = `DELETE FROM maintenance_records WHERE car_id = ?`
	deleteCarByIDSQL     = `DELETE FROM cars WHERE id = ? AND user_id = ?`
)

func (r *CarSQLite) Create(ctx context.Context, c models.Car) error {
	var plate sql.NullString
	if c.Plate != "" {
		plate = sql.NullString{String: c.Plate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertCarSQL,
		c.ID, c.UserID, c.Make, c.Model, c.Year, plate, c.CurrentMileage, c.Color)
	if err != nil {
		return fmt.Errorf("insert car %q: %w", c.ID, err)
	}
	return nil
}

func (r *CarSQLite) ListByUser(ctx context.Context, userID string) ([]models.Car, error) {
	rows, err := r.db.QueryContext(ctx, selectCarsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	out := make([]models.Car, 0, 8)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a car scoped to its owner. Returns (nil, nil) if not found.
func (r *CarSQLite) GetByID(ctx context.Context, userID, id string) (*models.Car, error) {
	row := r.db.QueryRowContext(ctx, selectCarByIDSQL, id, userID)
	var c models.Car
	var plate sql.NullString
	err := row.Scan(&c.ID, &c.UserID, &c.Make, &c.Model, &c.Year, &plate, &c.CurrentMileage, &c.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select car %q: %w", id, err)
	}
	c.Plate = plate.String
	return &c, nil
}

func (r *CarSQLite) UpdateMileage(ctx context.Context, id string, mileage int) error {
	if _, err := r.db.ExecContext(ctx, updateCarMileageSQL, mileage, id); err != nil {
		return fmt.Errorf("update mileage for car %q: %w", id, err)
	}
	return nil
}

// DeleteCascade removes the car's records and the car itself in a single
// transaction so no orphaned record can survive a partial failure.
func (r *CarSQLite) DeleteCascade(ctx context.Context, userID, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin cascade delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteCarRecordsSQL, id); err != nil {
		return false, fmt.Errorf("delete records of car %q: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, deleteCarByIDSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete car %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cascade delete rows affected: %w", err)
	}
	if n == 0 {
		// Unknown car (or not this user's): leave everything untouched.
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit cascade delete: %w", err)
	}
	return true, nil
}

func scanCar(rows *sql.Rows) (models.Car, error) {
	var c models.Car
	var plate sql.NullString
	if err := rows.Scan(&c.ID, &c.UserID, &c.Make, &c.Model, &c.Year, &plate, &c.CurrentMileage, &c.Color); err != nil {
		return models.Car{}, fmt.Errorf("scan car: %w", err)
	}
	c.Plate = plate.String
	return c, nil
}
