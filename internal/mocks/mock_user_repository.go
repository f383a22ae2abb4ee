package mocks

import (
	"context"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// MockUserRepository implements domain.UserRepository for testing.
type MockUserRepository struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	FindByEmailFunc            func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc               func(ctx context.Context, id string) (*domain.User, error)
	UpdateLastLoginFunc        func(ctx context.Context, id string, at time.Time) error
	UpdateStatusFunc           func(ctx context.Context, id, status string) error
	SetTwoFactorEnabledFunc    func(ctx context.Context, id string, enabled bool) error
	SetEmergencyCodeHashFunc   func(ctx context.Context, id, hash string) error
	ClearEmergencyCodeHashFunc func(ctx context.Context, id, expectedHash string) (bool, error)
}

// NewMockUserRepository creates a new MockUserRepository with default
// behaviors.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if user.ID == "" {
		user.ID = "mock-user-id"
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, id, at)
	}
	return nil
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockUserRepository) SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error {
	if m.SetTwoFactorEnabledFunc != nil {
		return m.SetTwoFactorEnabledFunc(ctx, id, enabled)
	}
	return nil
}

func (m *MockUserRepository) SetEmergencyCodeHash(ctx context.Context, id, hash string) error {
	if m.SetEmergencyCodeHashFunc != nil {
		return m.SetEmergencyCodeHashFunc(ctx, id, hash)
	}
	return nil
}

func (m *MockUserRepository) ClearEmergencyCodeHash(ctx context.Context, id, expectedHash string) (bool, error) {
	if m.ClearEmergencyCodeHashFunc != nil {
		return m.ClearEmergencyCodeHashFunc(ctx, id, expectedHash)
	}
	return true, nil
}
