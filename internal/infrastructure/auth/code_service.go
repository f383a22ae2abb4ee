package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/Kenc01/MediChain-PH/domain"
)

// CodeServiceImpl implements domain.CodeService. One-time codes, QR nonces
// and emergency codes are short-lived single-use secrets, so a fast SHA-256
// digest is used instead of the slow password hash.
type CodeServiceImpl struct {
	numericLength int
	tokenBytes    int
}

// NewCodeService creates a code service issuing numeric codes of the given
// length and random tokens of tokenBytes entropy (minimum 16 bytes).
func NewCodeService(numericLength, tokenBytes int) domain.CodeService {
	if numericLength <= 0 {
		numericLength = 6
	}
	if tokenBytes < 16 {
		tokenBytes = 32
	}
	return &CodeServiceImpl{numericLength: numericLength, tokenBytes: tokenBytes}
}

// GenerateNumeric returns a cryptographically random numeric code.
func (s *CodeServiceImpl) GenerateNumeric() (string, error) {
	digits := make([]byte, s.numericLength)
	for i := 0; i < s.numericLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}

// GenerateToken returns a urlsafe random secret suitable for bearer tokens,
// QR nonces and emergency codes.
func (s *CodeServiceImpl) GenerateToken() (string, error) {
	buf := make([]byte, s.tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Digest returns the hex-encoded SHA-256 digest of value.
func (s *CodeServiceImpl) Digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two hex digests in constant time.
func (s *CodeServiceImpl) DigestEqual(a, b string) bool {
	ab, err := hex.DecodeString(a)
	if err != nil {
		return false
	}
	bb, err := hex.DecodeString(b)
	if err != nil {
		return false
	}
	if len(ab) != len(bb) {
		return false
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}
