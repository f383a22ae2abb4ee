package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/mocks"
)

func activeUser() *domain.User {
	return &domain.User{
		ID:           "user-123",
		Email:        "patient@example.com",
		PasswordHash: "hashed_correcthorse",
		Phone:        "+639171234567",
		Role:         domain.RolePatient,
		Status:       domain.StatusActive,
	}
}

func newAuthServiceForTest(
	userRepo *mocks.MockUserRepository,
	profileRepo *mocks.MockProfileRepository,
	verificationRepo *mocks.MockVerificationRepository,
	sessionSvc *mocks.MockSessionService,
) domain.AuthService {
	return NewAuthService(userRepo, profileRepo, verificationRepo, sessionSvc, mocks.NewMockPasswordService(), mocks.NewMockAuditLogger())
}

func TestAuthServiceImpl_RegisterPatient(t *testing.T) {
	tests := []struct {
		name          string
		reg           domain.PatientRegistration
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockVerificationRepository)
		expectedError error
		validate      func(t *testing.T, result *domain.RegistrationResult, verifications []*domain.VerificationRequest)
	}{
		{
			name: "patient is active immediately and gets a session",
			reg: domain.PatientRegistration{
				Email:     "new@example.com",
				Password:  "correcthorse",
				FirstName: "Maria",
				LastName:  "Santos",
			},
			validate: func(t *testing.T, result *domain.RegistrationResult, verifications []*domain.VerificationRequest) {
				if result.User.Status != domain.StatusActive {
					t.Errorf("expected status %s, got %s", domain.StatusActive, result.User.Status)
				}
				if result.User.Role != domain.RolePatient {
					t.Errorf("expected role %s, got %s", domain.RolePatient, result.User.Role)
				}
				if result.Session == nil {
					t.Fatal("expected a session to be issued")
				}
				if result.RequiresApproval {
					t.Error("patient registration must not require approval")
				}
				if len(verifications) != 0 {
					t.Errorf("expected no verification requests, got %d", len(verifications))
				}
			},
		},
		{
			name: "government ID files an advisory verification request",
			reg: domain.PatientRegistration{
				Email:          "new@example.com",
				Password:       "correcthorse",
				FirstName:      "Maria",
				LastName:       "Santos",
				DocumentType:   "passport",
				DocumentNumber: "P1234567A",
			},
			validate: func(t *testing.T, result *domain.RegistrationResult, verifications []*domain.VerificationRequest) {
				if result.User.Status != domain.StatusActive {
					t.Errorf("expected status %s, got %s", domain.StatusActive, result.User.Status)
				}
				if result.Session == nil {
					t.Fatal("expected a session despite the pending ID check")
				}
				if len(verifications) != 1 {
					t.Fatalf("expected 1 verification request, got %d", len(verifications))
				}
				if verifications[0].Type != domain.VerificationGovernmentID {
					t.Errorf("expected type %s, got %s", domain.VerificationGovernmentID, verifications[0].Type)
				}
			},
		},
		{
			name: "duplicate email is rejected",
			reg: domain.PatientRegistration{
				Email:    "taken@example.com",
				Password: "correcthorse",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository, verificationRepo *mocks.MockVerificationRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return activeUser(), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
		},
		{
			name: "user creation failure is propagated",
			reg: domain.PatientRegistration{
				Email:    "new@example.com",
				Password: "correcthorse",
			},
			setupMocks: func(userRepo *mocks.MockUserRepository, verificationRepo *mocks.MockVerificationRepository) {
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return errors.New("database unavailable")
				}
			},
			expectedError: errors.New("failed to create user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			verificationRepo := mocks.NewMockVerificationRepository()
			var filed []*domain.VerificationRequest
			verificationRepo.CreateFunc = func(ctx context.Context, request *domain.VerificationRequest) error {
				filed = append(filed, request)
				return nil
			}
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo, verificationRepo)
			}

			svc := newAuthServiceForTest(userRepo, mocks.NewMockProfileRepository(), verificationRepo, mocks.NewMockSessionService())
			result, err := svc.RegisterPatient(context.Background(), tt.reg, "127.0.0.1", "test-agent")

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if errors.Is(tt.expectedError, domain.ErrEmailTaken) && !errors.Is(err, domain.ErrEmailTaken) {
					t.Errorf("expected ErrEmailTaken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, result, filed)
			}
		})
	}
}

func TestAuthServiceImpl_RegisterDoctor(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	profileRepo := mocks.NewMockProfileRepository()
	verificationRepo := mocks.NewMockVerificationRepository()
	sessionSvc := mocks.NewMockSessionService()
	sessionIssued := false
	sessionSvc.IssueFunc = func(ctx context.Context, userID, ip, agent string) (*domain.Session, error) {
		sessionIssued = true
		return nil, errors.New("must not be called")
	}

	var filed *domain.VerificationRequest
	verificationRepo.CreateFunc = func(ctx context.Context, request *domain.VerificationRequest) error {
		filed = request
		return nil
	}
	var doctorProfile *domain.DoctorProfile
	profileRepo.CreateDoctorProfileFunc = func(ctx context.Context, profile *domain.DoctorProfile) error {
		doctorProfile = profile
		return nil
	}

	svc := newAuthServiceForTest(userRepo, profileRepo, verificationRepo, sessionSvc)
	result, err := svc.RegisterDoctor(context.Background(), domain.DoctorRegistration{
		Email:          "doc@example.com",
		Password:       "correcthorse",
		FirstName:      "Jose",
		LastName:       "Rizal",
		LicenseNumber:  "PRC-0012345",
		IssuingBody:    "PRC",
		Specialization: "cardiology",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.Status != domain.StatusPending {
		t.Errorf("expected status %s, got %s", domain.StatusPending, result.User.Status)
	}
	if result.User.Role != domain.RoleDoctor {
		t.Errorf("expected role %s, got %s", domain.RoleDoctor, result.User.Role)
	}
	if !result.RequiresApproval {
		t.Error("doctor registration must require approval")
	}
	if result.Session != nil || sessionIssued {
		t.Error("no session may be issued for a pending doctor")
	}
	if filed == nil {
		t.Fatal("expected a verification request to be filed")
	}
	if filed.Type != domain.VerificationMedicalLicense {
		t.Errorf("expected type %s, got %s", domain.VerificationMedicalLicense, filed.Type)
	}
	if filed.DocumentNumber != "PRC-0012345" {
		t.Errorf("expected license number on the request, got %s", filed.DocumentNumber)
	}
	if doctorProfile == nil || doctorProfile.Specialization != "cardiology" {
		t.Error("expected doctor profile with specialization to be created")
	}
}

func TestAuthServiceImpl_RegisterHospital(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	profileRepo := mocks.NewMockProfileRepository()
	verificationRepo := mocks.NewMockVerificationRepository()

	var filed *domain.VerificationRequest
	verificationRepo.CreateFunc = func(ctx context.Context, request *domain.VerificationRequest) error {
		filed = request
		return nil
	}

	svc := newAuthServiceForTest(userRepo, profileRepo, verificationRepo, mocks.NewMockSessionService())
	result, err := svc.RegisterHospital(context.Background(), domain.HospitalRegistration{
		Email:         "admin@stlukes.ph",
		Password:      "correcthorse",
		HospitalName:  "St. Luke's Medical Center",
		LicenseNumber: "DOH-4321",
		Address:       "Quezon City",
		ContactNumber: "+63288888888",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.Role != domain.RoleHospitalAdmin {
		t.Errorf("expected role %s, got %s", domain.RoleHospitalAdmin, result.User.Role)
	}
	if result.User.Status != domain.StatusPending {
		t.Errorf("expected status %s, got %s", domain.StatusPending, result.User.Status)
	}
	if !result.RequiresApproval {
		t.Error("hospital registration must require approval")
	}
	if filed == nil || filed.Type != domain.VerificationHospitalAffiliation {
		t.Error("expected a hospital affiliation verification request")
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "patient@example.com",
			password: "correcthorse",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return activeUser(), nil
				}
			},
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "correcthorse",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "patient@example.com",
			password: "wrongpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return activeUser(), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "suspended account with correct password",
			email:    "patient@example.com",
			password: "correcthorse",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					u := activeUser()
					u.Status = domain.StatusSuspended
					return u, nil
				}
			},
			expectedError: domain.ErrAccountSuspended,
		},
		{
			name:     "rejected account with correct password",
			email:    "patient@example.com",
			password: "correcthorse",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					u := activeUser()
					u.Status = domain.StatusRejected
					return u, nil
				}
			},
			expectedError: domain.ErrAccountRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			if tt.setupMocks != nil {
				tt.setupMocks(userRepo)
			}

			svc := newAuthServiceForTest(userRepo, mocks.NewMockProfileRepository(), mocks.NewMockVerificationRepository(), mocks.NewMockSessionService())
			result, err := svc.Login(context.Background(), tt.email, tt.password, "127.0.0.1", "test-agent")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Session == nil {
				t.Fatal("expected a session")
			}
			if result.User.LastLoginAt == nil {
				t.Error("expected last login timestamp to be recorded")
			}
		})
	}
}

func TestAuthServiceImpl_Login_PendingDoctorAllowedAfterApproval(t *testing.T) {
	user := activeUser()
	user.Role = domain.RoleDoctor
	user.Status = domain.StatusPending

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}

	svc := newAuthServiceForTest(userRepo, mocks.NewMockProfileRepository(), mocks.NewMockVerificationRepository(), mocks.NewMockSessionService())

	// Pending accounts may hold a session; route guards keep them away from
	// active-only surfaces.
	if _, err := svc.Login(context.Background(), user.Email, "correcthorse", "127.0.0.1", "test-agent"); err != nil {
		t.Fatalf("pending login: unexpected error %v", err)
	}

	user.Status = domain.StatusActive
	result, err := svc.Login(context.Background(), user.Email, "correcthorse", "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("post-approval login: unexpected error %v", err)
	}
	if result.Session == nil {
		t.Fatal("expected a session after approval")
	}
}

func TestAuthServiceImpl_Login_SessionSurvivesLastLoginFailure(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(), nil
	}
	userRepo.UpdateLastLoginFunc = func(ctx context.Context, id string, at time.Time) error {
		return errors.New("db gone away")
	}

	svc := newAuthServiceForTest(userRepo, mocks.NewMockProfileRepository(), mocks.NewMockVerificationRepository(), mocks.NewMockSessionService())
	result, err := svc.Login(context.Background(), "patient@example.com", "correcthorse", "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("login must not fail on an advisory write: %v", err)
	}
	if result.Session == nil {
		t.Fatal("expected the issued session to survive")
	}
	if result.User.LastLoginAt != nil {
		t.Error("timestamp must stay unset when the write failed")
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	sessionSvc := mocks.NewMockSessionService()
	sessionSvc.ResolveFunc = func(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
		if token == "some-token" {
			return activeUser(), &domain.Session{Token: token, UserID: "user-123"}, nil
		}
		return nil, nil, domain.ErrUnauthenticated
	}
	var revoked string
	sessionSvc.RevokeFunc = func(ctx context.Context, token string) error {
		revoked = token
		return nil
	}

	audit := mocks.NewMockAuditLogger()
	svc := NewAuthService(mocks.NewMockUserRepository(), mocks.NewMockProfileRepository(), mocks.NewMockVerificationRepository(), sessionSvc, mocks.NewMockPasswordService(), audit)
	if err := svc.Logout(context.Background(), "some-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked != "some-token" {
		t.Errorf("expected token to be revoked, got %q", revoked)
	}

	if len(audit.Events) != 1 || audit.Events[0].EventType != domain.UserLogoutEvent {
		t.Fatalf("expected a logout audit event, got %v", audit.Events)
	}
	if audit.Events[0].UserID != "user-123" {
		t.Errorf("expected the event attributed to user-123, got %q", audit.Events[0].UserID)
	}

	// A dead token still logs out cleanly, just without attribution.
	if err := svc.Logout(context.Background(), "unknown-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audit.Events) != 1 {
		t.Errorf("expected no event for an unattributable logout, got %d", len(audit.Events))
	}
}
