package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Kenc01/MediChain-PH/internal/infrastructure/repositories"
)

// Open creates a new database connection.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the credential-store tables plus the Casbin policy
// table used by route authorization.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBUserProfile{},
		&repositories.DBDoctorProfile{},
		&repositories.DBHospitalProfile{},
		&repositories.DBQRLoginToken{},
		&repositories.DBTwoFactorMethod{},
		&repositories.DBVerificationRequest{},
	); err != nil {
		return fmt.Errorf("failed to migrate credential store: %w", err)
	}

	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin adapter: %w", err)
	}
	return nil
}
