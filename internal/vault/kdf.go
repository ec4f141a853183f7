package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the per-entry random salt length in bytes.
	SaltSize = 16

	// KeySize is the derived AES-256 key length in bytes.
	KeySize = 32

	// KDFIterations is the PBKDF2 iteration count.
	KDFIterations = 100_000
)

// DeriveKey turns the token response, the user passcode and a per-entry
// salt into a 32-byte AES key via PBKDF2-SHA256.
//
// The inputs are joined as "response:passcode". The ':' separator is
// unambiguous in practice: a YubiKey HMAC response is hex and a passcode
// containing ':' would still concatenate deterministically, which is the
// only property decryption needs.
//
// Deterministic: identical (response, passcode, salt) always yields the
// identical key, so decryption can reconstruct the encryption key exactly.
func DeriveKey(response, passcode string, salt []byte) ([]byte, error) {
	if passcode == "" {
		return nil, fmt.Errorf("passcode must not be empty")
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("invalid salt length: expected %d bytes, got %d", SaltSize, len(salt))
	}

	material := []byte(response + ":" + passcode)
	return pbkdf2.Key(material, salt, KDFIterations, KeySize, sha256.New), nil
}

// NewSalt generates a fresh random salt for one entry.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
