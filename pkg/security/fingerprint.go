package security

import (
	"crypto/rand"
	"fmt"
)

// Fingerprint prefixes, one per catalog entity.
const (
	AlbumFingerprintPrefix = "A"
	SongFingerprintPrefix  = "S"
)

const fingerprintDigits = 12

// NewFingerprint produces an opaque catalog identifier: the entity prefix
// followed by 12 random decimal digits. Uniqueness is enforced by the
// database constraint, not here.
func NewFingerprint(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("fingerprint prefix required")
	}

	buf := make([]byte, fingerprintDigits)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate fingerprint: %w", err)
	}

	digits := make([]byte, fingerprintDigits)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}
	return prefix + string(digits), nil
}
