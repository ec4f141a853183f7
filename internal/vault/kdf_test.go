package vault

import (
	"bytes"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}

	key1, err := DeriveKey("hmacresponse", "passcode", salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	key2, err := DeriveKey("hmacresponse", "passcode", salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !bytes.Equal(key1, key2) {
		t.Error("Identical inputs produced different keys")
	}
	if len(key1) != KeySize {
		t.Errorf("Expected %d byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputsDifferentKeys(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}

	base, err := DeriveKey("response", "passcode", salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	otherResponse, err := DeriveKey("other", "passcode", salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bytes.Equal(base, otherResponse) {
		t.Error("Different token responses produced the same key")
	}

	otherPasscode, err := DeriveKey("response", "other", salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bytes.Equal(base, otherPasscode) {
		t.Error("Different passcodes produced the same key")
	}

	otherSalt, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}
	rekeyed, err := DeriveKey("response", "passcode", otherSalt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bytes.Equal(base, rekeyed) {
		t.Error("Different salts produced the same key")
	}
}

func TestDeriveKey_EmptyPasscode(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}

	if _, err := DeriveKey("response", "", salt); err == nil {
		t.Error("Expected error for empty passcode, got nil")
	}
}

func TestDeriveKey_BadSaltLength(t *testing.T) {
	if _, err := DeriveKey("response", "passcode", []byte("short")); err == nil {
		t.Error("Expected error for short salt, got nil")
	}
}

func TestNewSalt_Unique(t *testing.T) {
	salt1, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}
	salt2, err := NewSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}

	if bytes.Equal(salt1, salt2) {
		t.Error("Two fresh salts are identical")
	}
}
