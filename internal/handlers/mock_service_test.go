package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"carlog/internal/models"
	"carlog/internal/service"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

const (
	testUserID = "user-1"
	testToken  = "good-token"
)

// Hand-written mocks over the service interfaces. Each call delegates to the
// corresponding fn field; calls without one return zero values.

type mockAuth struct {
	registerFn       func(ctx context.Context, name, username, password string) (string, *models.User, error)
	loginFn          func(ctx context.Context, username, password string) (string, *models.User, error)
	changePasswordFn func(ctx context.Context, userID string, p service.ChangePasswordParams) error
	logoutFn         func(ctx context.Context, accessToken string) error
	authenticateFn   func(ctx context.Context, accessToken string) (string, error)
	getUserFn        func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockAuth) Register(ctx context.Context, name, username, password string) (string, *models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, username, password)
	}
	return "", nil, nil
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return "", nil, nil
}

func (m *mockAuth) ChangePassword(ctx context.Context, userID string, p service.ChangePasswordParams) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, p)
	}
	return nil
}

func (m *mockAuth) Logout(ctx context.Context, accessToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, accessToken)
	}
	return nil
}

// Authenticate accepts testToken by default so protected routes can be
// exercised without real JWTs.
func (m *mockAuth) Authenticate(ctx context.Context, accessToken string) (string, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, accessToken)
	}
	if accessToken == testToken {
		return testUserID, nil
	}
	return "", service.ErrInvalidToken
}

func (m *mockAuth) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if m.getUserFn != nil {
		return m.getUserFn(ctx, userID)
	}
	return nil, nil
}

type mockGarage struct {
	addCarFn    func(ctx context.Context, userID string, p service.CarParams) (*models.Car, error)
	listCarsFn  func(ctx context.Context, userID string) ([]models.Car, error)
	getCarFn    func(ctx context.Context, userID, carID string) (*models.Car, error)
	deleteCarFn func(ctx context.Context, userID, carID string) error
}

func (m *mockGarage) AddCar(ctx context.Context, userID string, p service.CarParams) (*models.Car, error) {
	if m.addCarFn != nil {
		return m.addCarFn(ctx, userID, p)
	}
	return &models.Car{}, nil
}

func (m *mockGarage) ListCars(ctx context.Context, userID string) ([]models.Car, error) {
	if m.listCarsFn != nil {
		return m.listCarsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGarage) GetCar(ctx context.Context, userID, carID string) (*models.Car, error) {
	if m.getCarFn != nil {
		return m.getCarFn(ctx, userID, carID)
	}
	return &models.Car{ID: carID, UserID: userID}, nil
}

func (m *mockGarage) DeleteCar(ctx context.Context, userID, carID string) error {
	if m.deleteCarFn != nil {
		return m.deleteCarFn(ctx, userID, carID)
	}
	return nil
}

type mockLedger struct {
	addRecordFn    func(ctx context.Context, userID string, p service.RecordParams) (*models.MaintenanceRecord, error)
	editRecordFn   func(ctx context.Context, userID, recordID string, p service.RecordParams) (*models.MaintenanceRecord, error)
	deleteRecordFn func(ctx context.Context, userID, recordID string) error
	listByCarFn    func(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error)
	exportCSVFn    func(ctx context.Context, userID string) (string, string, error)
	importCSVFn    func(ctx context.Context, userID, carID, text string) (int, error)
}

func (m *mockLedger) AddRecord(ctx context.Context, userID string, p service.RecordParams) (*models.MaintenanceRecord, error) {
	if m.addRecordFn != nil {
		return m.addRecordFn(ctx, userID, p)
	}
	return &models.MaintenanceRecord{}, nil
}

func (m *mockLedger) EditRecord(ctx context.Context, userID, recordID string, p service.RecordParams) (*models.MaintenanceRecord, error) {
	if m.editRecordFn != nil {
		return m.editRecordFn(ctx, userID, recordID, p)
	}
	return &models.MaintenanceRecord{}, nil
}

func (m *mockLedger) DeleteRecord(ctx context.Context, userID, recordID string) error {
	if m.deleteRecordFn != nil {
		return m.deleteRecordFn(ctx, userID, recordID)
	}
	return nil
}

func (m *mockLedger) ListByCar(ctx context.Context, userID, carID string) ([]models.MaintenanceRecord, error) {
	if m.listByCarFn != nil {
		return m.listByCarFn(ctx, userID, carID)
	}
	return nil, nil
}

func (m *mockLedger) ExportCSV(ctx context.Context, userID string) (string, string, error) {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(ctx, userID)
	}
	return "", "", nil
}

func (m *mockLedger) ImportCSV(ctx context.Context, userID, carID, text string) (int, error) {
	if m.importCSVFn != nil {
		return m.importCSVFn(ctx, userID, carID, text)
	}
	return 0, nil
}

type mockStats struct {
	dashboardFn func(ctx context.Context, userID string, year int) (models.DashboardStats, error)
}

func (m *mockStats) Dashboard(ctx context.Context, userID string, year int) (models.DashboardStats, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, userID, year)
	}
	return models.DashboardStats{}, nil
}

type mockInsight struct {
	requestFn func(ctx context.Context, userID, carID string) (models.InsightResult, error)
	getFn     func(carID string) models.InsightResult
}

func (m *mockInsight) Request(ctx context.Context, userID, carID string) (models.InsightResult, error) {
	if m.requestFn != nil {
		return m.requestFn(ctx, userID, carID)
	}
	return models.InsightResult{CarID: carID, Status: models.InsightPending}, nil
}

func (m *mockInsight) Get(carID string) models.InsightResult {
	if m.getFn != nil {
		return m.getFn(carID)
	}
	return models.InsightResult{CarID: carID, Status: models.InsightIdle}
}

// newTestRouter builds a router around the given mocks. Nil mocks get a
// default instance so every route stays registrable.
func newTestRouter(svc *service.Service) *gin.Engine {
	if svc.Authorization == nil {
		svc.Authorization = &mockAuth{}
	}
	if svc.Garage == nil {
		svc.Garage = &mockGarage{}
	}
	if svc.Ledger == nil {
		svc.Ledger = &mockLedger{}
	}
	if svc.Stats == nil {
		svc.Stats = &mockStats{}
	}
	if svc.Insight == nil {
		svc.Insight = &mockInsight{}
	}
	return NewHandler(svc, nil).InitRoutes()
}

// perform sends a request through the router; a non-empty token is attached
// as a Bearer header.
func perform(router *gin.Engine, method, target, token, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performRaw sends a request with the Authorization header set verbatim,
// for exercising malformed header handling.
func performRaw(router *gin.Engine, method, target, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", authHeader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
