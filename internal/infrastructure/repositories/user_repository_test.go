package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Kenc01/MediChain-PH/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&DBUser{},
		&DBUserProfile{},
		&DBDoctorProfile{},
		&DBHospitalProfile{},
		&DBQRLoginToken{},
		&DBTwoFactorMethod{},
		&DBVerificationRequest{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, repo domain.UserRepository) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        "patient@example.com",
		PasswordHash: "hashed_password",
		Phone:        "+639171234567",
		Role:         domain.RolePatient,
		Status:       domain.StatusActive,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := seedUser(t, repo)
	if user.ID == "" {
		t.Fatal("expected an ID to be assigned")
	}

	byEmail, err := repo.FindByEmail(ctx, "patient@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected ID %s, got %s", user.ID, byEmail.ID)
	}
	if byEmail.PasswordHash != "hashed_password" {
		t.Errorf("expected password hash to round-trip, got %q", byEmail.PasswordHash)
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byID.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, byID.Email)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_Create_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	seedUser(t, repo)

	dup := &domain.User{
		Email:        "patient@example.com",
		PasswordHash: "hashed_other",
		Role:         domain.RolePatient,
		Status:       domain.StatusActive,
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Fatal("expected unique index violation")
	}
}

func TestUserRepositoryImpl_UpdateStatus(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)

	if err := repo.UpdateStatus(ctx, user.ID, domain.StatusSuspended); err != nil {
		t.Fatalf("update status: %v", err)
	}
	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Status != domain.StatusSuspended {
		t.Errorf("expected %s, got %s", domain.StatusSuspended, found.Status)
	}

	if err := repo.UpdateStatus(ctx, "no-such-id", domain.StatusActive); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryImpl_UpdateLastLogin(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)

	at := time.Now().Truncate(time.Second)
	if err := repo.UpdateLastLogin(ctx, user.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}
	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.LastLoginAt == nil || !found.LastLoginAt.Equal(at) {
		t.Errorf("expected last login %v, got %v", at, found.LastLoginAt)
	}
}

func TestUserRepositoryImpl_EmergencyCodeHashLifecycle(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)

	if err := repo.SetEmergencyCodeHash(ctx, user.ID, "digest-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	found, _ := repo.FindByID(ctx, user.ID)
	if found.EmergencyCodeHash != "digest-1" {
		t.Fatalf("expected digest-1, got %q", found.EmergencyCodeHash)
	}

	// Overwrite replaces the live code.
	if err := repo.SetEmergencyCodeHash(ctx, user.ID, "digest-2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	// Clearing against the stale digest misses.
	cleared, err := repo.ClearEmergencyCodeHash(ctx, user.ID, "digest-1")
	if err != nil {
		t.Fatalf("clear stale: %v", err)
	}
	if cleared {
		t.Fatal("stale digest must not clear")
	}

	cleared, err = repo.ClearEmergencyCodeHash(ctx, user.ID, "digest-2")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !cleared {
		t.Fatal("expected the live digest to clear")
	}
	found, _ = repo.FindByID(ctx, user.ID)
	if found.EmergencyCodeHash != "" {
		t.Errorf("expected empty hash, got %q", found.EmergencyCodeHash)
	}

	// A second clear of the same digest misses: single use.
	cleared, err = repo.ClearEmergencyCodeHash(ctx, user.ID, "digest-2")
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if cleared {
		t.Fatal("expected second clear to miss")
	}
}

func TestUserRepositoryImpl_ClearEmergencyCodeHash_Concurrent(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)

	if err := repo.SetEmergencyCodeHash(ctx, user.ID, "digest-race"); err != nil {
		t.Fatalf("set: %v", err)
	}

	const attempts = 8
	results := make(chan bool, attempts)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			ok, err := repo.ClearEmergencyCodeHash(ctx, user.ID, "digest-race")
			if err != nil {
				ok = false
			}
			results <- ok
		}()
	}
	start.Done()

	won := 0
	for i := 0; i < attempts; i++ {
		if <-results {
			won++
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winning clear, got %d", won)
	}
}

func TestUserRepositoryImpl_SetTwoFactorEnabled(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	user := seedUser(t, repo)

	if err := repo.SetTwoFactorEnabled(ctx, user.ID, true); err != nil {
		t.Fatalf("set: %v", err)
	}
	found, _ := repo.FindByID(ctx, user.ID)
	if !found.TwoFactorEnabled {
		t.Error("expected two-factor flag set")
	}
}
