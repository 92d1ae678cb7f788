package service

import (
	"context"
	"testing"

	"carlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCar_DefaultsColor(t *testing.T) {
	cars := newFakeCars()
	svc := NewGarageService(cars)

	c, err := svc.AddCar(context.Background(), "u1", CarParams{
		Make: "Toyota", Model: "Corolla", Year: 2019, Mileage: 50000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, models.DefaultColor, c.Color)
	assert.Equal(t, 50000, c.CurrentMileage)
}

func TestAddCar_AllowsDuplicates(t *testing.T) {
	cars := newFakeCars()
	svc := NewGarageService(cars)

	p := CarParams{Make: "Fiat", Model: "Uno", Year: 2010, Plate: "ABC-1234", Mileage: 1}
	a, err := svc.AddCar(context.Background(), "u1", p)
	require.NoError(t, err)
	b, err := svc.AddCar(context.Background(), "u1", p)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, cars.cars, 2)
}

func TestListCars_ScopedToOwner(t *testing.T) {
	cars := newFakeCars(
		models.Car{ID: "c1", UserID: "u1"},
		models.Car{ID: "c2", UserID: "u2"},
	)
	svc := NewGarageService(cars)

	got, err := svc.ListCars(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestDeleteCar_Cascades(t *testing.T) {
	cars := newFakeCars(models.Car{ID: "c1", UserID: "u1"})
	svc := NewGarageService(cars)

	require.NoError(t, svc.DeleteCar(context.Background(), "u1", "c1"))
	assert.Equal(t, []string{"c1"}, cars.cascadeDeleted)

	_, err := svc.GetCar(context.Background(), "u1", "c1")
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestDeleteCar_UnknownOrForeign(t *testing.T) {
	cars := newFakeCars(models.Car{ID: "c1", UserID: "u2"})
	svc := NewGarageService(cars)

	// Not this user's car: must not be deleted.
	err := svc.DeleteCar(context.Background(), "u1", "c1")
	assert.ErrorIs(t, err, ErrCarNotFound)
	assert.Len(t, cars.cars, 1)
}
