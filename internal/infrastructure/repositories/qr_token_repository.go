package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kenc01/MediChain-PH/domain"
)

// QRTokenRepositoryImpl implements domain.QRTokenRepository using GORM.
type QRTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBQRLoginToken is the database model for QR pairing tokens. Only the
// nonce digest is stored; user_id and consumed_at stay NULL until a scan
// binds the token.
type DBQRLoginToken struct {
	ID         string     `gorm:"primaryKey;size:36"`
	TokenHash  string     `gorm:"uniqueIndex;size:64"`
	UserID     *string    `gorm:"size:36"`
	ConsumedAt *time.Time
	ExpiresAt  time.Time `gorm:"index"`
	CreatedAt  time.Time
}

func (DBQRLoginToken) TableName() string { return "qr_login_tokens" }

// NewQRTokenRepository creates a new QR token repository.
func NewQRTokenRepository(db *gorm.DB) domain.QRTokenRepository {
	return &QRTokenRepositoryImpl{db: db}
}

// Create implements domain.QRTokenRepository.
func (r *QRTokenRepositoryImpl) Create(ctx context.Context, token *domain.QRLoginToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	dbToken := &DBQRLoginToken{
		ID:        token.ID,
		TokenHash: token.TokenHash,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.CreatedAt = dbToken.CreatedAt
	return nil
}

// FindByHash implements domain.QRTokenRepository. Expired rows are filtered
// at read time; they are reaped separately by DeleteExpired.
func (r *QRTokenRepositoryImpl) FindByHash(ctx context.Context, tokenHash string) (*domain.QRLoginToken, error) {
	var dbToken DBQRLoginToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND expires_at > ?", tokenHash, time.Now()).
		First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrCodeInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// Consume implements domain.QRTokenRepository. The conditional UPDATE is
// the single atomic test-and-set closing the double-scan race: of two
// concurrent scans, only one sees RowsAffected == 1.
func (r *QRTokenRepositoryImpl) Consume(ctx context.Context, tokenHash, userID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBQRLoginToken{}).
		Where("token_hash = ? AND consumed_at IS NULL AND expires_at > ?", tokenHash, at).
		Updates(map[string]interface{}{
			"user_id":     userID,
			"consumed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteExpired implements domain.QRTokenRepository.
func (r *QRTokenRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&DBQRLoginToken{})
	return res.RowsAffected, res.Error
}

func (r *QRTokenRepositoryImpl) dbToDomain(dbToken *DBQRLoginToken) *domain.QRLoginToken {
	return &domain.QRLoginToken{
		ID:         dbToken.ID,
		TokenHash:  dbToken.TokenHash,
		UserID:     dbToken.UserID,
		ConsumedAt: dbToken.ConsumedAt,
		ExpiresAt:  dbToken.ExpiresAt,
		CreatedAt:  dbToken.CreatedAt,
	}
}
