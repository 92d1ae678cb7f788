package service

import (
	"context"

	"carlog/internal/models"
	"carlog/internal/repository"

	"github.com/google/uuid"
)

// RecordParams carries the maintenance form fields.
type RecordParams struct {
	CarID    string
	PartName string
	Type     models.ServiceType
	Date     string
	Mileage  int
	Cost     float64
	Notes    string
}

type LedgerService struct {
	records repository.Records
	cars    repository.Cars
	users   repository.Users
}

func NewLedgerService(records repository.Records, cars repository.Cars, users repository.Users) *LedgerService {
	return &LedgerService{records: records, cars: cars, users: users}
}

// AddRecord appends a maintenance record and raises the owning car's mileage
// when the record reports a higher one.
func (s *LedgerService) AddRecord(ctx context.Context, userID string, p RecordParams) (*models.MaintenanceRecord, error) {
	car, err := s.cars.GetByID(ctx, userID, p.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrCarNotFound
	}

	rec := models.MaintenanceRecord{
		ID:       uuid.NewString(),
		CarID:    p.CarID,
		UserID:   userID,
		PartName: p.PartName,
		Type:     p.Type,
		Date:     p.Date,
		Mileage:  p.Mileage,
		Cost:     p.Cost,
		Notes:    p.Notes,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	if err := s.syncMileage(ctx, userID, p.CarID, p.Mileage); err != nil {
		return nil, err
	}
	return &rec, nil
}

// EditRecord replaces the form fields in place, preserving id and car id,
// and applies the same mileage sync as AddRecord.
func (s *LedgerService) EditRecord(ctx context.Context, userID, recordID string, p RecordParams) (*models.MaintenanceRecord, error) {
	rec, err := s.records.GetByID(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}

	rec.PartName = p.PartName
	rec.Type = p.Type
	rec.Date = p.Date
	rec.Mileage = p.Mileage
	rec.Cost = p.Cost
	rec.Notes = p.Notes

	if err := s.records.Update(ctx, *rec); err != nil {
		return nil, err
	}

	if err := s.syncMileage(ctx, userID, rec.CarID, rec.Mileage); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecord removes the record unconditionally. A mileage sync previously
// triggered by this record is not rolled back.
func (s *LedgerService) DeleteRecord(ctx context.Context, userID, recordID string) error {
	ok, err := s.records.Delete(ctx, userID, recordID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecordNotFound
	}
	return nil
}

func (s *LedgerService) ListByCar(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error) {
	car, err := s.cars.GetByID(ctx, userID, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, ErrCarNotFound
	}
	return s.records.ListByCar(ctx, userID, carID)
}

// syncMileage raises the car's current mileage to the record's, never lowers
// it. A car that does not resolve is skipped silently.
func (s *LedgerService) syncMileage(ctx context.Context, userID, carID string, mileage int) error {
	car, err := s.cars.GetByID(ctx, userID, carID)
	if err != nil {
		return err
	}
	if car == nil || mileage <= car.CurrentMileage {
		return nil
	}
	return s.cars.UpdateMileage(ctx, carID, mileage)
}
