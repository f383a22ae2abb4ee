package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
)

// AuthServiceImpl implements domain.AuthService.
type AuthServiceImpl struct {
	userRepo         domain.UserRepository
	profileRepo      domain.ProfileRepository
	verificationRepo domain.VerificationRepository
	sessionSvc       domain.SessionService
	passwordSvc      domain.PasswordService
	audit            domain.AuditLogger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	verificationRepo domain.VerificationRepository,
	sessionSvc domain.SessionService,
	passwordSvc domain.PasswordService,
	audit domain.AuditLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		verificationRepo: verificationRepo,
		sessionSvc:       sessionSvc,
		passwordSvc:      passwordSvc,
		audit:            audit,
	}
}

// RegisterPatient implements domain.AuthService. Patients enter directly at
// active status and leave with a session; a government ID, when supplied,
// only files an advisory verification request.
func (s *AuthServiceImpl) RegisterPatient(ctx context.Context, reg domain.PatientRegistration, ip, agent string) (*domain.RegistrationResult, error) {
	user, err := s.createUser(ctx, reg.Email, reg.Password, reg.Phone, domain.RolePatient, domain.StatusActive)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.CreateUserProfile(ctx, &domain.UserProfile{
		UserID:    user.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if reg.DocumentNumber != "" {
		if err := s.verificationRepo.Create(ctx, &domain.VerificationRequest{
			UserID:         user.ID,
			Type:           domain.VerificationGovernmentID,
			DocumentType:   reg.DocumentType,
			DocumentNumber: reg.DocumentNumber,
		}); err != nil {
			return nil, fmt.Errorf("failed to file verification request: %w", err)
		}
	}

	session, err := s.sessionSvc.Issue(ctx, user.ID, ip, agent)
	if err != nil {
		return nil, err
	}

	s.audit.Log(domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithEmail(user.Email).WithClient(ip, agent))
	return &domain.RegistrationResult{User: user, Session: session}, nil
}

// RegisterDoctor implements domain.AuthService. The account starts pending
// behind a medical-license verification request; no session is issued.
func (s *AuthServiceImpl) RegisterDoctor(ctx context.Context, reg domain.DoctorRegistration) (*domain.RegistrationResult, error) {
	user, err := s.createUser(ctx, reg.Email, reg.Password, reg.Phone, domain.RoleDoctor, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.CreateUserProfile(ctx, &domain.UserProfile{
		UserID:    user.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if err := s.profileRepo.CreateDoctorProfile(ctx, &domain.DoctorProfile{
		UserID:         user.ID,
		LicenseNumber:  reg.LicenseNumber,
		IssuingBody:    reg.IssuingBody,
		Specialization: reg.Specialization,
		HospitalID:     reg.HospitalID,
	}); err != nil {
		return nil, fmt.Errorf("failed to create doctor profile: %w", err)
	}

	if err := s.verificationRepo.Create(ctx, &domain.VerificationRequest{
		UserID:         user.ID,
		Type:           domain.VerificationMedicalLicense,
		DocumentType:   domain.VerificationMedicalLicense,
		DocumentNumber: reg.LicenseNumber,
	}); err != nil {
		return nil, fmt.Errorf("failed to file verification request: %w", err)
	}

	s.audit.Log(domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithEmail(user.Email))
	return &domain.RegistrationResult{User: user, RequiresApproval: true}, nil
}

// RegisterHospital implements domain.AuthService.
func (s *AuthServiceImpl) RegisterHospital(ctx context.Context, reg domain.HospitalRegistration) (*domain.RegistrationResult, error) {
	user, err := s.createUser(ctx, reg.Email, reg.Password, reg.Phone, domain.RoleHospitalAdmin, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.CreateUserProfile(ctx, &domain.UserProfile{
		UserID:    user.ID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
	}); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if err := s.profileRepo.CreateHospitalProfile(ctx, &domain.HospitalProfile{
		UserID:        user.ID,
		HospitalName:  reg.HospitalName,
		LicenseNumber: reg.LicenseNumber,
		Address:       reg.Address,
		ContactNumber: reg.ContactNumber,
	}); err != nil {
		return nil, fmt.Errorf("failed to create hospital profile: %w", err)
	}

	if err := s.verificationRepo.Create(ctx, &domain.VerificationRequest{
		UserID:         user.ID,
		Type:           domain.VerificationHospitalAffiliation,
		DocumentType:   "hospital_license",
		DocumentNumber: reg.LicenseNumber,
	}); err != nil {
		return nil, fmt.Errorf("failed to file verification request: %w", err)
	}

	s.audit.Log(domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithEmail(user.Email))
	return &domain.RegistrationResult{User: user, RequiresApproval: true}, nil
}

// Login implements domain.AuthService. Bad email and bad password collapse
// to the same failure; suspended and rejected accounts are refused even
// with a correct password.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip, agent string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.audit.Log(domain.NewAuditEvent(domain.UserLoginFailureEvent, "").WithEmail(email).WithClient(ip, agent).Failed("unknown email"))
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.Log(domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithEmail(email).WithClient(ip, agent).Failed("bad password"))
		return nil, domain.ErrInvalidCredentials
	}

	if err := statusGate(user); err != nil {
		s.audit.Log(domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithEmail(email).WithClient(ip, agent).Failed(user.Status))
		return nil, err
	}

	session, err := s.sessionSvc.Issue(ctx, user.ID, ip, agent)
	if err != nil {
		return nil, err
	}

	// The last-login stamp is advisory. The session is already live, so a
	// failed write must not turn a successful login into an error.
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err == nil {
		user.LastLoginAt = &now
	}

	s.audit.Log(domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(email).WithClient(ip, agent))
	return &domain.AuthResult{User: user, Session: session}, nil
}

// Logout implements domain.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	user, _, resolveErr := s.sessionSvc.Resolve(ctx, token)
	if err := s.sessionSvc.Revoke(ctx, token); err != nil {
		return err
	}
	// Revoking an already-dead token is still a successful logout, there
	// is just no owner left to attribute it to.
	if resolveErr == nil {
		s.audit.Log(domain.NewAuditEvent(domain.UserLogoutEvent, user.ID))
	}
	return nil
}

func (s *AuthServiceImpl) createUser(ctx context.Context, email, password, phone, role, status string) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashed,
		Phone:        phone,
		Role:         role,
		Status:       status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// statusGate maps a blocking account status to its authorization error.
func statusGate(user *domain.User) error {
	switch user.Status {
	case domain.StatusSuspended:
		return domain.ErrAccountSuspended
	case domain.StatusRejected:
		return domain.ErrAccountRejected
	}
	return nil
}
