package service

import (
	"context"

	"carlog/internal/models"
	"carlog/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, name, username, password string) (string, *models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ChangePassword(ctx context.Context, userID string, p ChangePasswordParams) error
	Logout(ctx context.Context, accessToken string) error
	// Authenticate verifies the token signature and that its session row
	// still exists, returning the user id.
	Authenticate(ctx context.Context, accessToken string) (string, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Garage exposes the per-user vehicle registry.
type Garage interface {
	AddCar(ctx context.Context, userID string, p CarParams) (*models.Car, error)
	ListCars(ctx context.Context, userID string) ([]models.Car, error)
	GetCar(ctx context.Context, userID, carID string) (*models.Car, error)
	DeleteCar(ctx context.Context, userID, carID string) error
}

// Ledger exposes maintenance records plus their CSV import/export.
type Ledger interface {
	AddRecord(ctx context.Context, userID string, p RecordParams) (*models.MaintenanceRecord, error)
	EditRecord(ctx context.Context, userID, recordID string, p RecordParams) (*models.MaintenanceRecord, error)
	DeleteRecord(ctx context.Context, userID, recordID string) error
	ListByCar(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error)
	ExportCSV(ctx context.Context, userID string) (filename, content string, err error)
	ImportCSV(ctx context.Context, userID, carID, text string) (int, error)
}

// Stats derives dashboard aggregates from the full record set.
type Stats interface {
	Dashboard(ctx context.Context, userID string, year int) (models.DashboardStats, error)
}

// Insight runs the advisory text generation. Request is fire-and-forget:
// it marks the car's slot pending and returns; the result (or the fallback
// apology) lands in the slot later.
type Insight interface {
	Request(ctx context.Context, userID, carID string) (models.InsightResult, error)
	Get(carID string) models.InsightResult
}

// Generator is the external text-generation collaborator.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	Authorization
	Garage
	Ledger
	Stats
	Insight
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, gen Generator, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions, signingKey),
		Garage:        NewGarageService(repos.Cars),
		Ledger:        NewLedgerService(repos.Records, repos.Cars, repos.Users),
		Stats:         NewStatsService(repos.Records),
		Insight:       NewInsightService(repos.Cars, repos.Records, gen),
	}
}
