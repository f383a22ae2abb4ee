package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kenc01/MediChain-PH/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags).
type DBUser struct {
	ID                string  `gorm:"primaryKey;size:36"`
	Email             string  `gorm:"uniqueIndex;size:255"`
	PasswordHash      string  `gorm:"column:password"`
	Phone             string  `gorm:"size:32"`
	Role              string  `gorm:"index;size:32"`
	Status            string  `gorm:"index;size:32"`
	TwoFactorEnabled  bool
	EmergencyCodeHash *string `gorm:"size:64"`
	LastLoginAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateLastLogin implements domain.UserRepository.
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UpdateStatus implements domain.UserRepository.
func (r *UserRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetTwoFactorEnabled implements domain.UserRepository.
func (r *UserRepositoryImpl) SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("two_factor_enabled", enabled).Error
}

// SetEmergencyCodeHash implements domain.UserRepository. Any previous value
// is overwritten: at most one emergency code is ever live per user.
func (r *UserRepositoryImpl) SetEmergencyCodeHash(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("emergency_code_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ClearEmergencyCodeHash implements domain.UserRepository. The conditional
// WHERE clause makes the clear a compare-and-set: of two concurrent logins
// presenting the same code, exactly one observes RowsAffected == 1.
func (r *UserRepositoryImpl) ClearEmergencyCodeHash(ctx context.Context, id, expectedHash string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND emergency_code_hash = ?", id, expectedHash).
		Update("emergency_code_hash", nil)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// domainToDB converts domain user to database user.
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	dbUser := &DBUser{
		ID:               user.ID,
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		Phone:            user.Phone,
		Role:             user.Role,
		Status:           user.Status,
		TwoFactorEnabled: user.TwoFactorEnabled,
		LastLoginAt:      user.LastLoginAt,
	}
	if user.EmergencyCodeHash != "" {
		hash := user.EmergencyCodeHash
		dbUser.EmergencyCodeHash = &hash
	}
	return dbUser
}

// dbToDomain converts database user to domain user.
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:               dbUser.ID,
		Email:            dbUser.Email,
		PasswordHash:     dbUser.PasswordHash,
		Phone:            dbUser.Phone,
		Role:             dbUser.Role,
		Status:           dbUser.Status,
		TwoFactorEnabled: dbUser.TwoFactorEnabled,
		LastLoginAt:      dbUser.LastLoginAt,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
	if dbUser.EmergencyCodeHash != nil {
		user.EmergencyCodeHash = *dbUser.EmergencyCodeHash
	}
	return user
}
