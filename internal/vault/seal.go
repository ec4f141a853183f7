package vault

import (
	"encoding/base64"
	"fmt"
	"time"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// Seal derives a fresh key from (response, passcode) with a new salt,
// encrypts plaintext under a new IV, and returns a fully self-contained
// entry. Callers fill in Description and the directory metadata.
func Seal(response, passcode string, plaintext []byte, method Method) (*Entry, error) {
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}

	key, err := DeriveKey(response, passcode, salt)
	if err != nil {
		return nil, err
	}

	var iv, ciphertext []byte
	switch method {
	case MethodAES256GCM:
		iv, err = NewIV(GCMNonceSize)
		if err != nil {
			return nil, err
		}
		ciphertext, err = EncryptGCM(key, iv, plaintext)
	case MethodAES256CBC:
		iv, err = NewIV(CBCIVSize)
		if err != nil {
			return nil, err
		}
		ciphertext, err = EncryptCBC(key, iv, plaintext)
	default:
		return nil, fmt.Errorf("%w: %q", verrors.ErrUnknownMethod, method)
	}
	if err != nil {
		return nil, err
	}

	return &Entry{
		EncryptedData:    base64.StdEncoding.EncodeToString(ciphertext),
		Salt:             base64.StdEncoding.EncodeToString(salt),
		IV:               base64.StdEncoding.EncodeToString(iv),
		CreatedAt:        time.Now().UTC(),
		EncryptionMethod: method,
	}, nil
}

// Open re-derives the key from the entry's stored salt and decrypts the
// ciphertext with the stored IV, dispatching on the entry's method tag.
//
// Returns ErrUnknownMethod for an unsupported tag and ErrStoreCorrupt when
// the base64 fields cannot be decoded. Every cryptographic failure is the
// single generic ErrAuthenticationFailed; which factor was wrong is never
// distinguished.
func Open(entry Entry, response, passcode string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(entry.EncryptedData)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encrypted_data encoding", verrors.ErrStoreCorrupt)
	}
	salt, err := base64.StdEncoding.DecodeString(entry.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: bad salt encoding", verrors.ErrStoreCorrupt)
	}
	iv, err := base64.StdEncoding.DecodeString(entry.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: bad iv encoding", verrors.ErrStoreCorrupt)
	}

	if len(salt) != SaltSize {
		return nil, verrors.ErrAuthenticationFailed
	}

	key, err := DeriveKey(response, passcode, salt)
	if err != nil {
		return nil, err
	}

	switch entry.EncryptionMethod {
	case MethodAES256GCM:
		return DecryptGCM(key, iv, ciphertext)
	case MethodAES256CBC:
		return DecryptCBC(key, iv, ciphertext)
	default:
		return nil, fmt.Errorf("%w: %q", verrors.ErrUnknownMethod, entry.EncryptionMethod)
	}
}
