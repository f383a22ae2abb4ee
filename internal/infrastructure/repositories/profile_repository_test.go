package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Kenc01/MediChain-PH/domain"
)

func TestProfileRepositoryImpl_UserProfile(t *testing.T) {
	repo := NewProfileRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.CreateUserProfile(ctx, &domain.UserProfile{
		UserID:    "user-123",
		FirstName: "Maria",
		LastName:  "Santos",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	profile, err := repo.FindUserProfile(ctx, "user-123")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if profile.FirstName != "Maria" || profile.LastName != "Santos" {
		t.Error("expected names to round-trip")
	}

	if _, err := repo.FindUserProfile(ctx, "user-456"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileRepositoryImpl_DoctorProfile(t *testing.T) {
	repo := NewProfileRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.CreateDoctorProfile(ctx, &domain.DoctorProfile{
		UserID:         "doc-1",
		LicenseNumber:  "PRC-0012345",
		IssuingBody:    "PRC",
		Specialization: "cardiology",
		HospitalID:     "hosp-1",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	profile, err := repo.FindDoctorProfile(ctx, "doc-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if profile.LicenseNumber != "PRC-0012345" || profile.HospitalID != "hosp-1" {
		t.Error("expected credentials to round-trip")
	}
}

func TestProfileRepositoryImpl_ListHospitals(t *testing.T) {
	repo := NewProfileRepository(setupTestDB(t))
	ctx := context.Background()

	for _, h := range []domain.HospitalProfile{
		{UserID: "h-2", HospitalName: "St. Luke's Medical Center", LicenseNumber: "DOH-2"},
		{UserID: "h-1", HospitalName: "Makati Medical Center", LicenseNumber: "DOH-1"},
	} {
		hospital := h
		if err := repo.CreateHospitalProfile(ctx, &hospital); err != nil {
			t.Fatalf("create %s: %v", h.HospitalName, err)
		}
	}

	hospitals, err := repo.ListHospitals(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hospitals) != 2 {
		t.Fatalf("expected 2 hospitals, got %d", len(hospitals))
	}
	// Directory is ordered by name.
	if hospitals[0].HospitalName != "Makati Medical Center" {
		t.Errorf("expected alphabetical order, got %s first", hospitals[0].HospitalName)
	}
}
