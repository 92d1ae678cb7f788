package service

import (
	"context"

	"carlog/internal/models"
	"carlog/internal/repository"

	"github.com/google/uuid"
)

// CarParams carries the vehicle registration form fields.
type CarParams struct {
	Make    string
	Model   string
	Year    int
	Plate   string
	Mileage int
	Color   string
}

type GarageService struct {
	cars repository.Cars
}

func NewGarageService(cars repository.Cars) *GarageService {
	return &GarageService{cars: cars}
}

// AddCar registers a new vehicle. No uniqueness constraint applies across
// vehicles; duplicate plates and models are allowed.
func (s *GarageService) AddCar(ctx context.Context, userID string, p CarParams) (*models.Car, error) {
	color := p.Color
	if color == "" {
		color = models.DefaultColor
	}

	c := models.Car{
		ID:             uuid.NewString(),
		UserID:         userID,
		Make:           p.Make,
		Model:          p.Model,
		Year:           p.Year,
		Plate:          p.Plate,
		CurrentMileage: p.Mileage,
		Color:          color,
	}
	if err := s.cars.Create(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *GarageService) ListCars(ctx context.Context, userID string) ([]models.Car, error) {
	return s.cars.ListByUser(ctx, userID)
}

func (s *GarageService) GetCar(ctx context.Context, userID, carID string) (*models.Car, error) {
	c, err := s.cars.GetByID(ctx, userID, carID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCarNotFound
	}
	return c, nil
}

// DeleteCar removes the vehicle and cascades to all of its maintenance
// records. The repository runs both removals in one transaction, so no
// orphaned record can remain after the call returns.
func (s *GarageService) DeleteCar(ctx context.Context, userID, carID string) error {
	ok, err := s.cars.DeleteCascade(ctx, userID, carID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCarNotFound
	}
	return nil
}
