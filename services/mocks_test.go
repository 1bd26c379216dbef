package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/eventnow/eventnow_backend/models"
)

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts
}

// mockRequestRepo lets each test supply only the calls it cares about.
type mockRequestRepo struct {
	createFunc       func(ctx context.Context, req *models.Request) error
	findByIDFunc     func(ctx context.Context, id string) (*models.Request, error)
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
	if m.findByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.findByIDFunc(ctx, id)
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

// memoryRequestRepo is a working in-memory store for flow tests that
// span submit, status update and lookup.
type memoryRequestRepo struct {
	mu       sync.Mutex
	requests map[string]models.Request
}

func newMemoryRequestRepo() *memoryRequestRepo {
	return &memoryRequestRepo{requests: make(map[string]models.Request)}
}

func (m *memoryRequestRepo) Create(ctx context.Context, req *models.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.RequestID] = *req
	return nil
}

func (m *memoryRequestRepo) FindByID(ctx context.Context, id string) (*models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &req, nil
}

func (m *memoryRequestRepo) FindByEmail(ctx context.Context, email string) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Request
	for _, req := range m.requests {
		if req.Email == email {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out, nil
}

func (m *memoryRequestRepo) FindAll(ctx context.Context) ([]models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Request, 0, len(m.requests))
	for _, req := range m.requests {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out, nil
}

func (m *memoryRequestRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	req.Status = status
	m.requests[id] = req
	return &req, nil
}

// mockIdentity stands in for the identity provider.
type mockIdentity struct {
	signInFunc  func(ctx context.Context, email, password string) (*Session, error)
	signOutFunc func(ctx context.Context, userID string) error

	signOutCalls []string
}

func (m *mockIdentity) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if m.signInFunc == nil {
		return nil, models.ErrInvalidCredentials
	}
	return m.signInFunc(ctx, email, password)
}

func (m *mockIdentity) SignOut(ctx context.Context, userID string) error {
	m.signOutCalls = append(m.signOutCalls, userID)
	if m.signOutFunc == nil {
		return nil
	}
	return m.signOutFunc(ctx, userID)
}

// mockDirectory answers admin membership checks.
type mockDirectory struct {
	isAdminFunc func(ctx context.Context, userID string) (bool, error)
	calls       int
}

func (m *mockDirectory) IsAdmin(ctx context.Context, userID string) (bool, error) {
	m.calls++
	if m.isAdminFunc == nil {
		return false, nil
	}
	return m.isAdminFunc(ctx, userID)
}
