package workflows

import (
	"context"
	"fmt"

	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/token"
	"github.com/yubivault/yubivault/internal/vault"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Service is the name the entry is stored under. It doubles as the
	// challenge sent to the token.
	Service string

	// Plaintext is the secret to protect.
	Plaintext []byte

	// Passcode is the second factor. Must not be empty; interactive
	// confirmation happens in the CLI layer before this workflow runs.
	Passcode string

	// Description is a human label stored with the entry.
	Description string

	// LegacyCBC writes the entry in the unauthenticated AES-256-CBC
	// format instead of AES-256-GCM, for interoperability with older
	// tooling reading the same document.
	LegacyCBC bool

	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store

	// Responder overrides the hardware token (tests). Nil means ykman.
	Responder token.Responder
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// Service is the name the entry was stored under.
	Service string

	// Method is the encryption method tag written to the entry.
	Method vault.Method

	// Replaced indicates an existing entry was overwritten.
	Replaced bool

	// StorePath is the vault document that was updated.
	StorePath string
}

// Encrypt enrolls or re-enrolls a service secret.
//
// The token response is obtained first and any hardware failure aborts the
// operation before the document is read, so a failed run leaves the vault
// on disk completely unmodified. A fresh salt and IV are generated, the
// key is derived, and the entry is upserted; every other entry is
// untouched.
//
// Returns ErrVaultNotInitialized if no vault exists.
// Returns ErrEmptyPasscode if no passcode was supplied.
// Returns ErrTokenToolMissing, ErrTokenTimeout or ErrTokenUnavailable on
// hardware failure.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	if opts.Service == "" {
		return nil, fmt.Errorf("service name must not be empty")
	}
	if opts.Passcode == "" {
		return nil, verrors.ErrEmptyPasscode
	}

	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	responder, err := resolveResponder(opts.Responder)
	if err != nil {
		return nil, err
	}

	response, err := responder.ChallengeResponse(ctx, opts.Service)
	if err != nil {
		return nil, err
	}

	method := vault.MethodAES256GCM
	if opts.LegacyCBC {
		method = vault.MethodAES256CBC
	}

	entry, err := vault.Seal(response, opts.Passcode, opts.Plaintext, method)
	if err != nil {
		return nil, fmt.Errorf("encrypting secret for %s: %w", opts.Service, err)
	}
	entry.Description = opts.Description

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}
	_, replaced := doc[opts.Service]
	doc[opts.Service] = *entry

	if err := store.Save(doc); err != nil {
		return nil, err
	}

	return &EncryptResult{
		Service:   opts.Service,
		Method:    method,
		Replaced:  replaced,
		StorePath: store.Path,
	}, nil
}
