package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Kenc01/MediChain-PH/domain"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using GORM.
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// DBUserProfile is the database model for the shared profile.
type DBUserProfile struct {
	UserID    string `gorm:"primaryKey;size:36"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DBUserProfile) TableName() string { return "user_profiles" }

// DBDoctorProfile is the database model for doctor credentials.
type DBDoctorProfile struct {
	UserID         string `gorm:"primaryKey;size:36"`
	LicenseNumber  string `gorm:"size:128"`
	IssuingBody    string `gorm:"size:255"`
	Specialization string `gorm:"size:255"`
	HospitalID     string `gorm:"index;size:36"`
	CreatedAt      time.Time
}

func (DBDoctorProfile) TableName() string { return "doctor_profiles" }

// DBHospitalProfile is the database model for hospital details.
type DBHospitalProfile struct {
	UserID        string `gorm:"primaryKey;size:36"`
	HospitalName  string `gorm:"size:255"`
	LicenseNumber string `gorm:"size:128"`
	Address       string `gorm:"size:512"`
	ContactNumber string `gorm:"size:32"`
	CreatedAt     time.Time
}

func (DBHospitalProfile) TableName() string { return "hospital_profiles" }

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// CreateUserProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) CreateUserProfile(ctx context.Context, profile *domain.UserProfile) error {
	return r.db.WithContext(ctx).Create(&DBUserProfile{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
	}).Error
}

// FindUserProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) FindUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var dbProfile DBUserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.UserProfile{
		UserID:    dbProfile.UserID,
		FirstName: dbProfile.FirstName,
		LastName:  dbProfile.LastName,
	}, nil
}

// CreateDoctorProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) CreateDoctorProfile(ctx context.Context, profile *domain.DoctorProfile) error {
	return r.db.WithContext(ctx).Create(&DBDoctorProfile{
		UserID:         profile.UserID,
		LicenseNumber:  profile.LicenseNumber,
		IssuingBody:    profile.IssuingBody,
		Specialization: profile.Specialization,
		HospitalID:     profile.HospitalID,
	}).Error
}

// FindDoctorProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) FindDoctorProfile(ctx context.Context, userID string) (*domain.DoctorProfile, error) {
	var dbProfile DBDoctorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &domain.DoctorProfile{
		UserID:         dbProfile.UserID,
		LicenseNumber:  dbProfile.LicenseNumber,
		IssuingBody:    dbProfile.IssuingBody,
		Specialization: dbProfile.Specialization,
		HospitalID:     dbProfile.HospitalID,
	}, nil
}

// CreateHospitalProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) CreateHospitalProfile(ctx context.Context, profile *domain.HospitalProfile) error {
	return r.db.WithContext(ctx).Create(&DBHospitalProfile{
		UserID:        profile.UserID,
		HospitalName:  profile.HospitalName,
		LicenseNumber: profile.LicenseNumber,
		Address:       profile.Address,
		ContactNumber: profile.ContactNumber,
	}).Error
}

// FindHospitalProfile implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) FindHospitalProfile(ctx context.Context, userID string) (*domain.HospitalProfile, error) {
	var dbProfile DBHospitalProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.hospitalToDomain(&dbProfile), nil
}

// ListHospitals implements domain.ProfileRepository.
func (r *ProfileRepositoryImpl) ListHospitals(ctx context.Context) ([]*domain.HospitalProfile, error) {
	var dbProfiles []DBHospitalProfile
	if err := r.db.WithContext(ctx).Order("hospital_name").Find(&dbProfiles).Error; err != nil {
		return nil, err
	}
	hospitals := make([]*domain.HospitalProfile, 0, len(dbProfiles))
	for i := range dbProfiles {
		hospitals = append(hospitals, r.hospitalToDomain(&dbProfiles[i]))
	}
	return hospitals, nil
}

func (r *ProfileRepositoryImpl) hospitalToDomain(dbProfile *DBHospitalProfile) *domain.HospitalProfile {
	return &domain.HospitalProfile{
		UserID:        dbProfile.UserID,
		HospitalName:  dbProfile.HospitalName,
		LicenseNumber: dbProfile.LicenseNumber,
		Address:       dbProfile.Address,
		ContactNumber: dbProfile.ContactNumber,
	}
}
