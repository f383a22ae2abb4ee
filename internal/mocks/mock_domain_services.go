package mocks

import (
	"context"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// MockAuthService implements domain.AuthService for testing.
type MockAuthService struct {
	RegisterPatientFunc  func(ctx context.Context, reg domain.PatientRegistration, ip, agent string) (*domain.RegistrationResult, error)
	RegisterDoctorFunc   func(ctx context.Context, reg domain.DoctorRegistration) (*domain.RegistrationResult, error)
	RegisterHospitalFunc func(ctx context.Context, reg domain.HospitalRegistration) (*domain.RegistrationResult, error)
	LoginFunc            func(ctx context.Context, email, password, ip, agent string) (*domain.AuthResult, error)
	LogoutFunc           func(ctx context.Context, token string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RegisterPatient(ctx context.Context, reg domain.PatientRegistration, ip, agent string) (*domain.RegistrationResult, error) {
	if m.RegisterPatientFunc != nil {
		return m.RegisterPatientFunc(ctx, reg, ip, agent)
	}
	return &domain.RegistrationResult{
		User:    &domain.User{ID: "mock-user-id", Email: reg.Email, Role: domain.RolePatient, Status: domain.StatusActive},
		Session: &domain.Session{Token: "mock-session-token", UserID: "mock-user-id"},
	}, nil
}

func (m *MockAuthService) RegisterDoctor(ctx context.Context, reg domain.DoctorRegistration) (*domain.RegistrationResult, error) {
	if m.RegisterDoctorFunc != nil {
		return m.RegisterDoctorFunc(ctx, reg)
	}
	return &domain.RegistrationResult{
		User:             &domain.User{ID: "mock-user-id", Email: reg.Email, Role: domain.RoleDoctor, Status: domain.StatusPending},
		RequiresApproval: true,
	}, nil
}

func (m *MockAuthService) RegisterHospital(ctx context.Context, reg domain.HospitalRegistration) (*domain.RegistrationResult, error) {
	if m.RegisterHospitalFunc != nil {
		return m.RegisterHospitalFunc(ctx, reg)
	}
	return &domain.RegistrationResult{
		User:             &domain.User{ID: "mock-user-id", Email: reg.Email, Role: domain.RoleHospitalAdmin, Status: domain.StatusPending},
		RequiresApproval: true,
	}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ip, agent string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ip, agent)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// MockQRLoginService implements domain.QRLoginService for testing.
type MockQRLoginService struct {
	GenerateFunc func(ctx context.Context) (string, time.Time, error)
	ScanFunc     func(ctx context.Context, nonce string, scanner *domain.User) error
	PollFunc     func(ctx context.Context, nonce, ip, agent string) (*domain.QRPollResult, error)
}

func NewMockQRLoginService() *MockQRLoginService {
	return &MockQRLoginService{}
}

func (m *MockQRLoginService) Generate(ctx context.Context) (string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "mock-nonce", time.Now().Add(2 * time.Minute), nil
}

func (m *MockQRLoginService) Scan(ctx context.Context, nonce string, scanner *domain.User) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx, nonce, scanner)
	}
	return nil
}

func (m *MockQRLoginService) Poll(ctx context.Context, nonce, ip, agent string) (*domain.QRPollResult, error) {
	if m.PollFunc != nil {
		return m.PollFunc(ctx, nonce, ip, agent)
	}
	return &domain.QRPollResult{Authenticated: false}, nil
}

// MockChallengeService implements domain.ChallengeService for testing.
type MockChallengeService struct {
	RequestFunc      func(ctx context.Context, user *domain.User, action string) (string, error)
	VerifyFunc       func(ctx context.Context, userID, action, code string) (bool, error)
	EnrollMethodFunc func(ctx context.Context, userID, methodType string) (*domain.TwoFactorMethod, error)
}

func NewMockChallengeService() *MockChallengeService {
	return &MockChallengeService{}
}

func (m *MockChallengeService) Request(ctx context.Context, user *domain.User, action string) (string, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, user, action)
	}
	if !domain.ValidChallengeAction(action) {
		return "", domain.ErrInvalidAction
	}
	return "123456", nil
}

func (m *MockChallengeService) Verify(ctx context.Context, userID, action, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID, action, code)
	}
	if !domain.ValidChallengeAction(action) {
		return false, domain.ErrInvalidAction
	}
	return false, nil
}

func (m *MockChallengeService) EnrollMethod(ctx context.Context, userID, methodType string) (*domain.TwoFactorMethod, error) {
	if m.EnrollMethodFunc != nil {
		return m.EnrollMethodFunc(ctx, userID, methodType)
	}
	if !domain.ValidTwoFactorType(methodType) {
		return nil, domain.ErrInvalidTwoFactorType
	}
	return &domain.TwoFactorMethod{ID: "mock-method-id", UserID: userID, Type: methodType}, nil
}

// MockEmergencyAccessService implements domain.EmergencyAccessService for
// testing.
type MockEmergencyAccessService struct {
	GenerateCodeFunc func(ctx context.Context, userID string) (string, error)
	LoginFunc        func(ctx context.Context, email, code, ip, agent string) (*domain.AuthResult, error)
}

func NewMockEmergencyAccessService() *MockEmergencyAccessService {
	return &MockEmergencyAccessService{}
}

func (m *MockEmergencyAccessService) GenerateCode(ctx context.Context, userID string) (string, error) {
	if m.GenerateCodeFunc != nil {
		return m.GenerateCodeFunc(ctx, userID)
	}
	return "mock-emergency-code", nil
}

func (m *MockEmergencyAccessService) Login(ctx context.Context, email, code, ip, agent string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, code, ip, agent)
	}
	return nil, domain.ErrInvalidCredentials
}

// MockApprovalService implements domain.ApprovalService for testing.
type MockApprovalService struct {
	ListPendingFunc func(ctx context.Context) ([]*domain.VerificationRequest, error)
	ApproveFunc     func(ctx context.Context, requestID, reviewerID string) (*domain.VerificationRequest, error)
	RejectFunc      func(ctx context.Context, requestID, reviewerID, reason string) (*domain.VerificationRequest, error)
}

func NewMockApprovalService() *MockApprovalService {
	return &MockApprovalService{}
}

func (m *MockApprovalService) ListPending(ctx context.Context) ([]*domain.VerificationRequest, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

func (m *MockApprovalService) Approve(ctx context.Context, requestID, reviewerID string) (*domain.VerificationRequest, error) {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, requestID, reviewerID)
	}
	return &domain.VerificationRequest{ID: requestID, Status: domain.ReviewApproved, ReviewerID: reviewerID}, nil
}

func (m *MockApprovalService) Reject(ctx context.Context, requestID, reviewerID, reason string) (*domain.VerificationRequest, error) {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, requestID, reviewerID, reason)
	}
	return &domain.VerificationRequest{ID: requestID, Status: domain.ReviewRejected, ReviewerID: reviewerID, RejectionReason: reason}, nil
}
