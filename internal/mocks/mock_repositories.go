package mocks

import (
	"context"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing.
type MockSessionRepository struct {
	CreateFunc           func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc      func(ctx context.Context, token string) (*domain.Session, error)
	DeleteFunc           func(ctx context.Context, token string) error
	DeleteAllForUserFunc func(ctx context.Context, userID string) error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

func (m *MockSessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return nil
}

// MockQRTokenRepository implements domain.QRTokenRepository for testing.
type MockQRTokenRepository struct {
	CreateFunc        func(ctx context.Context, token *domain.QRLoginToken) error
	FindByHashFunc    func(ctx context.Context, tokenHash string) (*domain.QRLoginToken, error)
	ConsumeFunc       func(ctx context.Context, tokenHash, userID string, at time.Time) (bool, error)
	DeleteExpiredFunc func(ctx context.Context) (int64, error)
}

func NewMockQRTokenRepository() *MockQRTokenRepository {
	return &MockQRTokenRepository{}
}

func (m *MockQRTokenRepository) Create(ctx context.Context, token *domain.QRLoginToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *MockQRTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.QRLoginToken, error) {
	if m.FindByHashFunc != nil {
		return m.FindByHashFunc(ctx, tokenHash)
	}
	return nil, domain.ErrCodeInvalid
}

func (m *MockQRTokenRepository) Consume(ctx context.Context, tokenHash, userID string, at time.Time) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, tokenHash, userID, at)
	}
	return false, nil
}

func (m *MockQRTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

// MockChallengeRepository implements domain.ChallengeRepository for testing.
type MockChallengeRepository struct {
	StoreFunc   func(ctx context.Context, userID, action, codeHash string, ttl time.Duration) error
	ConsumeFunc func(ctx context.Context, userID, action, codeHash string) (bool, error)
}

func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{}
}

func (m *MockChallengeRepository) Store(ctx context.Context, userID, action, codeHash string, ttl time.Duration) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, userID, action, codeHash, ttl)
	}
	return nil
}

func (m *MockChallengeRepository) Consume(ctx context.Context, userID, action, codeHash string) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, userID, action, codeHash)
	}
	return false, nil
}

// MockTwoFactorMethodRepository implements domain.TwoFactorMethodRepository
// for testing.
type MockTwoFactorMethodRepository struct {
	CreateFunc     func(ctx context.Context, method *domain.TwoFactorMethod) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.TwoFactorMethod, error)
}

func NewMockTwoFactorMethodRepository() *MockTwoFactorMethodRepository {
	return &MockTwoFactorMethodRepository{}
}

func (m *MockTwoFactorMethodRepository) Create(ctx context.Context, method *domain.TwoFactorMethod) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, method)
	}
	return nil
}

func (m *MockTwoFactorMethodRepository) ListByUser(ctx context.Context, userID string) ([]*domain.TwoFactorMethod, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockProfileRepository implements domain.ProfileRepository for testing.
type MockProfileRepository struct {
	CreateUserProfileFunc     func(ctx context.Context, profile *domain.UserProfile) error
	FindUserProfileFunc       func(ctx context.Context, userID string) (*domain.UserProfile, error)
	CreateDoctorProfileFunc   func(ctx context.Context, profile *domain.DoctorProfile) error
	FindDoctorProfileFunc     func(ctx context.Context, userID string) (*domain.DoctorProfile, error)
	CreateHospitalProfileFunc func(ctx context.Context, profile *domain.HospitalProfile) error
	FindHospitalProfileFunc   func(ctx context.Context, userID string) (*domain.HospitalProfile, error)
	ListHospitalsFunc         func(ctx context.Context) ([]*domain.HospitalProfile, error)
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) CreateUserProfile(ctx context.Context, profile *domain.UserProfile) error {
	if m.CreateUserProfileFunc != nil {
		return m.CreateUserProfileFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if m.FindUserProfileFunc != nil {
		return m.FindUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockProfileRepository) CreateDoctorProfile(ctx context.Context, profile *domain.DoctorProfile) error {
	if m.CreateDoctorProfileFunc != nil {
		return m.CreateDoctorProfileFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindDoctorProfile(ctx context.Context, userID string) (*domain.DoctorProfile, error) {
	if m.FindDoctorProfileFunc != nil {
		return m.FindDoctorProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockProfileRepository) CreateHospitalProfile(ctx context.Context, profile *domain.HospitalProfile) error {
	if m.CreateHospitalProfileFunc != nil {
		return m.CreateHospitalProfileFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindHospitalProfile(ctx context.Context, userID string) (*domain.HospitalProfile, error) {
	if m.FindHospitalProfileFunc != nil {
		return m.FindHospitalProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockProfileRepository) ListHospitals(ctx context.Context) ([]*domain.HospitalProfile, error) {
	if m.ListHospitalsFunc != nil {
		return m.ListHospitalsFunc(ctx)
	}
	return nil, nil
}

// MockVerificationRepository implements domain.VerificationRepository for
// testing.
type MockVerificationRepository struct {
	CreateFunc      func(ctx context.Context, request *domain.VerificationRequest) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.VerificationRequest, error)
	ListPendingFunc func(ctx context.Context) ([]*domain.VerificationRequest, error)
	ReviewFunc      func(ctx context.Context, id, reviewerID, status, reason, userStatus string) (*domain.VerificationRequest, error)
}

func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{}
}

func (m *MockVerificationRepository) Create(ctx context.Context, request *domain.VerificationRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	if request.ID == "" {
		request.ID = "mock-verification-id"
	}
	return nil
}

func (m *MockVerificationRepository) FindByID(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrVerificationNotFound
}

func (m *MockVerificationRepository) ListPending(ctx context.Context) ([]*domain.VerificationRequest, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

func (m *MockVerificationRepository) Review(ctx context.Context, id, reviewerID, status, reason, userStatus string) (*domain.VerificationRequest, error) {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, id, reviewerID, status, reason, userStatus)
	}
	return nil, domain.ErrVerificationNotFound
}
