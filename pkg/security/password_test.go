package security_test

import (
	"strings"
	"testing"

	"github.com/soundrift/soundrift-backend/pkg/config"
	"github.com/soundrift/soundrift-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	hash, err := security.HashPassword("very-secure-password", cfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestNewFingerprintShape(t *testing.T) {
	fp, err := security.NewFingerprint(security.AlbumFingerprintPrefix)
	if err != nil {
		t.Fatalf("NewFingerprint returned error: %v", err)
	}
	if len(fp) != 13 {
		t.Fatalf("expected 13 characters, got %d (%q)", len(fp), fp)
	}
	if !strings.HasPrefix(fp, "A") {
		t.Fatalf("expected album prefix, got %q", fp)
	}
	for _, r := range fp[1:] {
		if r < '0' || r > '9' {
			t.Fatalf("expected digits after prefix, got %q", fp)
		}
	}
}

func TestNewFingerprintRequiresPrefix(t *testing.T) {
	if _, err := security.NewFingerprint(""); err == nil {
		t.Fatal("expected error for empty prefix")
	}
}
