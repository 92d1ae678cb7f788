package service

import (
	"context"
	"sort"
	"strings"

	"carlog/internal/models"
)

// In-memory fakes for the repository interfaces. The user fake matches
// usernames case-insensitively, like the COLLATE NOCASE column does.

type fakeUsers struct {
	users           []models.User
	passwordUpdates map[string]string
}

func newFakeUsers(users ...models.User) *fakeUsers {
	return &fakeUsers{users: users, passwordUpdates: map[string]string{}}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for i := range f.users {
		if strings.EqualFold(f.users[i].Username, username) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, password string) error {
	f.passwordUpdates[id] = password
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Password = password
		}
	}
	return nil
}

type fakeSessions struct {
	rows map[string]string // token id -> user id
}

func newFakeSessions() *fakeSessions { return &fakeSessions{rows: map[string]string{}} }

func (f *fakeSessions) Create(_ context.Context, s models.Session) error {
	f.rows[s.TokenID] = s.UserID
	return nil
}

func (f *fakeSessions) Exists(_ context.Context, tokenID string) (bool, error) {
	_, ok := f.rows[tokenID]
	return ok, nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenID string) error {
	delete(f.rows, tokenID)
	return nil
}

type fakeCars struct {
	cars           []models.Car
	mileageUpdates map[string]int
	cascadeDeleted []string
}

func newFakeCars(cars ...models.Car) *fakeCars {
	return &fakeCars{cars: cars, mileageUpdates: map[string]int{}}
}

func (f *fakeCars) Create(_ context.Context, c models.Car) error {
	f.cars = append(f.cars, c)
	return nil
}

func (f *fakeCars) ListByUser(_ context.Context, userID string) ([]models.Car, error) {
	out := []models.Car{}
	for _, c := range f.cars {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCars) GetByID(_ context.Context, userID, id string) (*models.Car, error) {
	for i := range f.cars {
		if f.cars[i].ID == id && f.cars[i].UserID == userID {
			c := f.cars[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCars) UpdateMileage(_ context.Context, id string, mileage int) error {
	f.mileageUpdates[id] = mileage
	for i := range f.cars {
		if f.cars[i].ID == id {
			f.cars[i].CurrentMileage = mileage
		}
	}
	return nil
}

func (f *fakeCars) DeleteCascade(_ context.Context, userID, id string) (bool, error) {
	for i := range f.cars {
		if f.cars[i].ID == id && f.cars[i].UserID == userID {
			f.cars = append(f.cars[:i], f.cars[i+1:]...)
			f.cascadeDeleted = append(f.cascadeDeleted, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeRecords struct {
	recs []models.MaintenanceRecord
}

func newFakeRecords(recs ...models.MaintenanceRecord) *fakeRecords {
	return &fakeRecords{recs: recs}
}

func (f *fakeRecords) Create(_ context.Context, r models.MaintenanceRecord) error {
	f.recs = append(f.recs, r)
	return nil
}

func (f *fakeRecords) CreateBatch(_ context.Context, rs []models.MaintenanceRecord) error {
	f.recs = append(f.recs, rs...)
	return nil
}

func (f *fakeRecords) ListByUser(_ context.Context, userID string) ([]models.MaintenanceRecord, error) {
	out := []models.MaintenanceRecord{}
	for _, r := range f.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecords) ListByCar(_ context.Context, userID, carID string) ([]models.MaintenanceRecord, error) {
	out := []models.MaintenanceRecord{}
	for _, r := range f.recs {
		if r.UserID == userID && r.CarID == carID {
			out = append(out, r)
		}
	}
	// Newest first, like the SQL query orders it.
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeRecords) GetByID(_ context.Context, userID, id string) (*models.MaintenanceRecord, error) {
	for i := range f.recs {
		if f.recs[i].ID == id && f.recs[i].UserID == userID {
			r := f.recs[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecords) Update(_ context.Context, rec models.MaintenanceRecord) error {
	for i := range f.recs {
		if f.recs[i].ID == rec.ID && f.recs[i].UserID == rec.UserID {
			f.recs[i] = rec
			return nil
		}
	}
	return nil
}

func (f *fakeRecords) Delete(_ context.Context, userID, id string) (bool, error) {
	for i := range f.recs {
		if f.recs[i].ID == id && f.recs[i].UserID == userID {
			f.recs = append(f.recs[:i], f.recs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
