package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/services"
)

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func dataMap(t *testing.T, resp models.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("response data is %T, want object", resp.Data)
	}
	return data
}

// mockRequestRepo mirrors the repository contract with injectable calls.
type mockRequestRepo struct {
	createFunc       func(ctx context.Context, req *models.Request) error
	findByEmailFunc  func(ctx context.Context, email string) ([]models.Request, error)
	findAllFunc      func(ctx context.Context) ([]models.Request, error)
	updateStatusFunc func(ctx context.Context, id, status string) (*models.Request, error)
}

func (m *mockRequestRepo) Create(ctx context.Context, req *models.Request) error {
	if m.createFunc == nil {
		return nil
	}
	return m.createFunc(ctx, req)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id string) (*models.Request, error) {
	return nil, models.ErrNotFound
}

func (m *mockRequestRepo) FindByEmail(ctx context.Context, email string) ([]models.Request, error) {
	if m.findByEmailFunc == nil {
		return nil, nil
	}
	return m.findByEmailFunc(ctx, email)
}

func (m *mockRequestRepo) FindAll(ctx context.Context) ([]models.Request, error) {
	if m.findAllFunc == nil {
		return nil, nil
	}
	return m.findAllFunc(ctx)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Request, error) {
	if m.updateStatusFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.updateStatusFunc(ctx, id, status)
}

type mockIdentity struct {
	signInFunc func(ctx context.Context, email, password string) (*services.Session, error)
}

func (m *mockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*services.Session, error) {
	if m.signInFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.signInFunc(ctx, email, password)
}

func (m *mockIdentity) SignOut(ctx context.Context, userID string) error { return nil }

type mockDirectory struct {
	isAdminFunc func(ctx context.Context, userID string) (bool, error)
}

func (m *mockDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if m.isAdminFunc == nil {
		return false, nil
	}
	return m.isAdminFunc(ctx, userID)
}

func adminGuard(identity services.IdentityProvider, directory *mockDirectory) *services.SessionGuard {
	return services.NewSessionGuard(identity, directory, services.NewMemoryTokenBlacklist(), []byte("test-secret"))
}

func bodyReader(body string) *strings.Reader {
	return strings.NewReader(body)
}
