package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/http/middleware"
)

// AuthHandlers handles registration, login and session HTTP requests.
type AuthHandlers struct {
	authSvc      domain.AuthService
	emergencySvc domain.EmergencyAccessService
	profileRepo  domain.ProfileRepository
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authSvc domain.AuthService, emergencySvc domain.EmergencyAccessService, profileRepo domain.ProfileRepository) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		emergencySvc: emergencySvc,
		profileRepo:  profileRepo,
	}
}

// GovernmentIDRequest is the optional advisory ID block on patient
// registration.
type GovernmentIDRequest struct {
	DocumentType   string `json:"documentType" binding:"required"`
	DocumentNumber string `json:"documentNumber" binding:"required"`
}

// RegisterPatientRequest represents patient registration.
type RegisterPatientRequest struct {
	Email        string               `json:"email" binding:"required,email"`
	Password     string               `json:"password" binding:"required,min=8"`
	Phone        string               `json:"phone"`
	FirstName    string               `json:"firstName" binding:"required"`
	LastName     string               `json:"lastName" binding:"required"`
	GovernmentID *GovernmentIDRequest `json:"governmentId"`
}

// RegisterDoctorRequest represents doctor registration.
type RegisterDoctorRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Phone          string `json:"phone"`
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	LicenseNumber  string `json:"licenseNumber" binding:"required"`
	IssuingBody    string `json:"issuingBody" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	HospitalID     string `json:"hospitalId"`
}

// RegisterHospitalRequest represents hospital-admin registration.
type RegisterHospitalRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Phone         string `json:"phone"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	HospitalName  string `json:"hospitalName" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	Address       string `json:"address" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
}

// LoginRequest represents password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmergencyLoginRequest represents backup-code login.
type EmergencyLoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	EmergencyCode string `json:"emergencyCode" binding:"required"`
}

// RegisterPatient handles patient registration: the account is active
// immediately and a session is issued.
func (h *AuthHandlers) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	reg := domain.PatientRegistration{
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.GovernmentID != nil {
		reg.DocumentType = req.GovernmentID.DocumentType
		reg.DocumentNumber = req.GovernmentID.DocumentNumber
	}

	result, err := h.authSvc.RegisterPatient(c.Request.Context(), reg, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    h.userJSON(c, result.User),
		"token":   result.Session.Token,
		"message": "Registration successful",
	})
}

// RegisterDoctor handles doctor registration: the account is pending and no
// session is issued until an admin approves the license.
func (h *AuthHandlers) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	_, err := h.authSvc.RegisterDoctor(c.Request.Context(), domain.DoctorRegistration{
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		LicenseNumber:  req.LicenseNumber,
		IssuingBody:    req.IssuingBody,
		Specialization: req.Specialization,
		HospitalID:     req.HospitalID,
	})
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"status":           domain.StatusPending,
		"requiresApproval": true,
		"message":          "Registration submitted. Your account is pending admin approval.",
	})
}

// RegisterHospital handles hospital-admin registration, pending like
// doctors.
func (h *AuthHandlers) RegisterHospital(c *gin.Context) {
	var req RegisterHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	_, err := h.authSvc.RegisterHospital(c.Request.Context(), domain.HospitalRegistration{
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		HospitalName:  req.HospitalName,
		LicenseNumber: req.LicenseNumber,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		if err == domain.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"status":           domain.StatusPending,
		"requiresApproval": true,
		"message":          "Registration submitted. Your account is pending admin approval.",
	})
}

// Login handles password login.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case domain.ErrAccountSuspended:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		case domain.ErrAccountRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account was not approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  h.userJSON(c, result.User),
		"token": result.Session.Token,
	})
}

// EmergencyLogin handles single-use backup-code login.
func (h *AuthHandlers) EmergencyLogin(c *gin.Context) {
	var req EmergencyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.emergencySvc.Login(c.Request.Context(), req.Email, req.EmergencyCode, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrAccountSuspended:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account suspended"})
		case domain.ErrAccountRejected:
			c.JSON(http.StatusForbidden, gin.H{"error": "Account was not approved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Emergency login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    h.userJSON(c, result.User),
		"token":   result.Session.Token,
		"warning": result.Warning,
	})
}

// Logout revokes the presented session.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token, exists := c.Get(middleware.CtxSessionToken)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), token.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the authenticated user with their profiles.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	resp := gin.H{"user": h.userJSON(c, user)}
	switch user.Role {
	case domain.RoleDoctor:
		if profile, err := h.profileRepo.FindDoctorProfile(c.Request.Context(), user.ID); err == nil {
			resp["doctorProfile"] = profile
		}
	case domain.RoleHospitalAdmin:
		if profile, err := h.profileRepo.FindHospitalProfile(c.Request.Context(), user.ID); err == nil {
			resp["hospitalProfile"] = profile
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListHospitals returns the public hospital directory used by the
// registration form.
func (h *AuthHandlers) ListHospitals(c *gin.Context) {
	hospitals, err := h.profileRepo.ListHospitals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hospitals"})
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

// userJSON shapes the public user payload, attaching profile names when
// present.
func (h *AuthHandlers) userJSON(c *gin.Context, user *domain.User) gin.H {
	payload := gin.H{
		"id":     user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"status": user.Status,
	}
	if profile, err := h.profileRepo.FindUserProfile(c.Request.Context(), user.ID); err == nil {
		payload["firstName"] = profile.FirstName
		payload["lastName"] = profile.LastName
	}
	return payload
}
