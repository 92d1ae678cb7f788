package repository

import (
	"context"
	"database/sql"

	"carlog/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, password string) error
}

type Sessions interface {
	Create(ctx context.Context, s models.Session) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenID string) error
}

type Cars interface {
	Create(ctx context.Context, c models.Car) error
	ListByUser(ctx context.Context, userID string) ([]models.Car, error)
	GetByID(ctx context.Context, userID, id string) (*models.Car, error)
	UpdateMileage(ctx context.Context, id string, mileage int) error
	// DeleteCascade removes the car and every record pointing at it in one
	// transaction. Returns false when no such car exists for the user.
	DeleteCascade(ctx context.Context, userID, id string) (bool, error)
}

type Records interface {
	Create(ctx context.Context, r models.MaintenanceRecord) error
	CreateBatch(ctx context.Context, rs []models.MaintenanceRecord) error
	ListByUser(ctx context.Context, userID string) ([]models.MaintenanceRecord, error)
	ListByCar(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error)
	GetByID(ctx context.Context, userID, id string) (*models.MaintenanceRecord, error)
	Update(ctx context.Context, r models.MaintenanceRecord) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type Repository struct {
	Users    Users
	Sessions Sessions
	Cars     Cars
	Records  Records
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Sessions: NewSessionSQLite(db),
		Cars:     NewCarSQLite(db),
		Records:  NewRecordSQLite(db),
	}
}
