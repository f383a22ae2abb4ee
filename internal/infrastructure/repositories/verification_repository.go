package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kenc01/MediChain-PH/domain"
)

// VerificationRepositoryImpl implements domain.VerificationRepository using
// GORM.
type VerificationRepositoryImpl struct {
	db *gorm.DB
}

// DBVerificationRequest is the database model for onboarding verification
// requests.
type DBVerificationRequest struct {
	ID              string `gorm:"primaryKey;size:36"`
	UserID          string `gorm:"index;size:36"`
	Type            string `gorm:"size:64"`
	DocumentType    string `gorm:"size:64"`
	DocumentNumber  string `gorm:"size:128"`
	Status          string `gorm:"index;size:32"`
	ReviewerID      string `gorm:"size:36"`
	RejectionReason string `gorm:"size:512"`
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

func (DBVerificationRequest) TableName() string { return "verification_requests" }

// DBTwoFactorMethod is the database model for enrolled 2FA channels.
type DBTwoFactorMethod struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:36"`
	Type      string `gorm:"size:16"`
	Secret    string `gorm:"size:128"`
	CreatedAt time.Time
}

func (DBTwoFactorMethod) TableName() string { return "two_factor_methods" }

// NewVerificationRepository creates a new verification repository.
func NewVerificationRepository(db *gorm.DB) domain.VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

// Create implements domain.VerificationRepository.
func (r *VerificationRepositoryImpl) Create(ctx context.Context, request *domain.VerificationRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = domain.ReviewPending
	}
	dbReq := r.domainToDB(request)
	if err := r.db.WithContext(ctx).Create(dbReq).Error; err != nil {
		return err
	}
	request.CreatedAt = dbReq.CreatedAt
	return nil
}

// FindByID implements domain.VerificationRepository.
func (r *VerificationRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.VerificationRequest, error) {
	var dbReq DBVerificationRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbReq).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbReq), nil
}

// ListPending implements domain.VerificationRepository.
func (r *VerificationRepositoryImpl) ListPending(ctx context.Context) ([]*domain.VerificationRequest, error) {
	var dbReqs []DBVerificationRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.ReviewPending).
		Order("created_at").
		Find(&dbReqs).Error
	if err != nil {
		return nil, err
	}
	requests := make([]*domain.VerificationRequest, 0, len(dbReqs))
	for i := range dbReqs {
		requests = append(requests, r.dbToDomain(&dbReqs[i]))
	}
	return requests, nil
}

// Review implements domain.VerificationRepository. The request transition
// and the owning user's status transition commit in one transaction; the
// `status = pending` guard makes the review single-shot, so a second
// reviewer gets ErrAlreadyReviewed instead of overwriting the decision.
func (r *VerificationRepositoryImpl) Review(ctx context.Context, id, reviewerID, status, reason, userStatus string) (*domain.VerificationRequest, error) {
	var reviewed *domain.VerificationRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbReq DBVerificationRequest
		if err := tx.Where("id = ?", id).First(&dbReq).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrVerificationNotFound
			}
			return err
		}

		now := time.Now()
		res := tx.Model(&DBVerificationRequest{}).
			Where("id = ? AND status = ?", id, domain.ReviewPending).
			Updates(map[string]interface{}{
				"status":           status,
				"reviewer_id":      reviewerID,
				"rejection_reason": reason,
				"reviewed_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyReviewed
		}

		if err := tx.Model(&DBUser{}).Where("id = ?", dbReq.UserID).
			Update("status", userStatus).Error; err != nil {
			return err
		}

		dbReq.Status = status
		dbReq.ReviewerID = reviewerID
		dbReq.RejectionReason = reason
		dbReq.ReviewedAt = &now
		reviewed = r.dbToDomain(&dbReq)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

func (r *VerificationRepositoryImpl) domainToDB(request *domain.VerificationRequest) *DBVerificationRequest {
	return &DBVerificationRequest{
		ID:              request.ID,
		UserID:          request.UserID,
		Type:            request.Type,
		DocumentType:    request.DocumentType,
		DocumentNumber:  request.DocumentNumber,
		Status:          request.Status,
		ReviewerID:      request.ReviewerID,
		RejectionReason: request.RejectionReason,
		ReviewedAt:      request.ReviewedAt,
	}
}

func (r *VerificationRepositoryImpl) dbToDomain(dbReq *DBVerificationRequest) *domain.VerificationRequest {
	return &domain.VerificationRequest{
		ID:              dbReq.ID,
		UserID:          dbReq.UserID,
		Type:            dbReq.Type,
		DocumentType:    dbReq.DocumentType,
		DocumentNumber:  dbReq.DocumentNumber,
		Status:          dbReq.Status,
		ReviewerID:      dbReq.ReviewerID,
		RejectionReason: dbReq.RejectionReason,
		ReviewedAt:      dbReq.ReviewedAt,
		CreatedAt:       dbReq.CreatedAt,
	}
}

// TwoFactorMethodRepositoryImpl implements domain.TwoFactorMethodRepository
// using GORM.
type TwoFactorMethodRepositoryImpl struct {
	db *gorm.DB
}

// NewTwoFactorMethodRepository creates a new 2FA method repository.
func NewTwoFactorMethodRepository(db *gorm.DB) domain.TwoFactorMethodRepository {
	return &TwoFactorMethodRepositoryImpl{db: db}
}

// Create implements domain.TwoFactorMethodRepository.
func (r *TwoFactorMethodRepositoryImpl) Create(ctx context.Context, method *domain.TwoFactorMethod) error {
	if method.ID == "" {
		method.ID = uuid.NewString()
	}
	dbMethod := &DBTwoFactorMethod{
		ID:     method.ID,
		UserID: method.UserID,
		Type:   method.Type,
		Secret: method.Secret,
	}
	if err := r.db.WithContext(ctx).Create(dbMethod).Error; err != nil {
		return err
	}
	method.CreatedAt = dbMethod.CreatedAt
	return nil
}

// ListByUser implements domain.TwoFactorMethodRepository.
func (r *TwoFactorMethodRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*domain.TwoFactorMethod, error) {
	var dbMethods []DBTwoFactorMethod
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&dbMethods).Error; err != nil {
		return nil, err
	}
	methods := make([]*domain.TwoFactorMethod, 0, len(dbMethods))
	for i := range dbMethods {
		methods = append(methods, &domain.TwoFactorMethod{
			ID:        dbMethods[i].ID,
			UserID:    dbMethods[i].UserID,
			Type:      dbMethods[i].Type,
			Secret:    dbMethods[i].Secret,
			CreatedAt: dbMethods[i].CreatedAt,
		})
	}
	return methods, nil
}
