package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Kenc01/MediChain-PH/domain"
	"github.com/Kenc01/MediChain-PH/internal/mocks"
)

// memoryQRStore is an in-memory QRTokenRepository with the same atomic
// consume semantics as the SQL implementation.
type memoryQRStore struct {
	mu     sync.Mutex
	tokens map[string]*domain.QRLoginToken
}

func newMemoryQRStore() *memoryQRStore {
	return &memoryQRStore{tokens: map[string]*domain.QRLoginToken{}}
}

func (s *memoryQRStore) Create(ctx context.Context, token *domain.QRLoginToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *token
	s.tokens[token.TokenHash] = &cp
	return nil
}

func (s *memoryQRStore) FindByHash(ctx context.Context, tokenHash string) (*domain.QRLoginToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[tokenHash]
	if !ok || !token.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrCodeInvalid
	}
	cp := *token
	return &cp, nil
}

func (s *memoryQRStore) Consume(ctx context.Context, tokenHash, userID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[tokenHash]
	if !ok || token.ConsumedAt != nil || !token.ExpiresAt.After(at) {
		return false, nil
	}
	token.UserID = &userID
	token.ConsumedAt = &at
	return true, nil
}

func (s *memoryQRStore) DeleteExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for hash, token := range s.tokens {
		if !token.ExpiresAt.After(time.Now()) {
			delete(s.tokens, hash)
			n++
		}
	}
	return n, nil
}

func newQRServiceForTest(store domain.QRTokenRepository, userRepo *mocks.MockUserRepository) domain.QRLoginService {
	return NewQRLoginService(store, userRepo, mocks.NewMockSessionService(), mocks.NewMockCodeService(), 2*time.Minute, mocks.NewMockAuditLogger())
}

func TestQRLoginServiceImpl_Handshake(t *testing.T) {
	scanner := activeUser()
	store := newMemoryQRStore()
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		if id == scanner.ID {
			return scanner, nil
		}
		return nil, domain.ErrUserNotFound
	}
	svc := newQRServiceForTest(store, userRepo)
	ctx := context.Background()

	nonce, expiresAt, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if nonce == "" {
		t.Fatal("expected a nonce")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}
	// Only the digest may be stored.
	if _, ok := store.tokens[nonce]; ok {
		t.Error("nonce stored in cleartext")
	}

	// Before the scan, poll reports unauthenticated without a session.
	result, err := svc.Poll(ctx, nonce, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("poll before scan: %v", err)
	}
	if result.Authenticated {
		t.Fatal("expected unauthenticated before scan")
	}

	if err := svc.Scan(ctx, nonce, scanner); err != nil {
		t.Fatalf("scan: %v", err)
	}

	result, err = svc.Poll(ctx, nonce, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("poll after scan: %v", err)
	}
	if !result.Authenticated {
		t.Fatal("expected authenticated after scan")
	}
	if result.User.ID != scanner.ID {
		t.Errorf("expected session for %s, got %s", scanner.ID, result.User.ID)
	}
	if result.Session == nil || result.Session.Token == "" {
		t.Fatal("expected a fresh session token")
	}
}

func TestQRLoginServiceImpl_Scan(t *testing.T) {
	tests := []struct {
		name          string
		scannerStatus string
		nonce         func(t *testing.T, svc domain.QRLoginService) string
		expectedError error
	}{
		{
			name:          "unknown nonce",
			scannerStatus: domain.StatusActive,
			nonce: func(t *testing.T, svc domain.QRLoginService) string {
				return "never-issued"
			},
			expectedError: domain.ErrCodeInvalid,
		},
		{
			name:          "suspended scanner cannot vouch",
			scannerStatus: domain.StatusSuspended,
			expectedError: domain.ErrAccountSuspended,
		},
		{
			name:          "rejected scanner cannot vouch",
			scannerStatus: domain.StatusRejected,
			expectedError: domain.ErrAccountRejected,
		},
		{
			name:          "replayed scan fails",
			scannerStatus: domain.StatusActive,
			nonce: func(t *testing.T, svc domain.QRLoginService) string {
				nonce, _, err := svc.Generate(context.Background())
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
				if err := svc.Scan(context.Background(), nonce, activeUser()); err != nil {
					t.Fatalf("first scan: %v", err)
				}
				return nonce
			},
			expectedError: domain.ErrCodeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newQRServiceForTest(newMemoryQRStore(), mocks.NewMockUserRepository())
			ctx := context.Background()

			nonce := ""
			if tt.nonce != nil {
				nonce = tt.nonce(t, svc)
			} else {
				var err error
				nonce, _, err = svc.Generate(ctx)
				if err != nil {
					t.Fatalf("generate: %v", err)
				}
			}

			scanner := activeUser()
			scanner.Status = tt.scannerStatus
			if err := svc.Scan(ctx, nonce, scanner); !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestQRLoginServiceImpl_ConcurrentScans(t *testing.T) {
	store := newMemoryQRStore()
	svc := newQRServiceForTest(store, mocks.NewMockUserRepository())
	ctx := context.Background()

	nonce, _, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	const scanners = 16
	results := make(chan error, scanners)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < scanners; i++ {
		go func() {
			start.Wait()
			results <- svc.Scan(ctx, nonce, activeUser())
		}()
	}
	start.Done()

	won := 0
	for i := 0; i < scanners; i++ {
		err := <-results
		switch {
		case err == nil:
			won++
		case errors.Is(err, domain.ErrCodeInvalid):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("expected exactly one winning scan, got %d", won)
	}
}

func TestQRLoginServiceImpl_Poll_ScannerSuspendedBetweenScanAndPoll(t *testing.T) {
	scanner := activeUser()
	store := newMemoryQRStore()
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		return scanner, nil
	}
	svc := newQRServiceForTest(store, userRepo)
	ctx := context.Background()

	nonce, _, err := svc.Generate(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.Scan(ctx, nonce, scanner); err != nil {
		t.Fatalf("scan: %v", err)
	}

	scanner.Status = domain.StatusSuspended
	result, err := svc.Poll(ctx, nonce, "127.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if result.Authenticated {
		t.Fatal("suspended scanner must not yield a session")
	}
}
