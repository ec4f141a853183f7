package workflows

import (
	"context"
	"fmt"

	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/token"
	"github.com/yubivault/yubivault/internal/vault"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Service is the name of the enrolled entry.
	Service string

	// Passcode is the second factor.
	Passcode string

	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store

	// Responder overrides the hardware token (tests). Nil means ykman.
	Responder token.Responder
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Service is the name of the decrypted entry.
	Service string

	// Plaintext is the recovered secret.
	Plaintext []byte

	// Entry is the stored entry's metadata (ciphertext fields included,
	// already consumed).
	Entry vault.Entry
}

// Decrypt recovers a service secret. Reading is side-effect free: the
// document is never modified.
//
// The entry lookup happens before any hardware interaction, so callers can
// distinguish "never enrolled" from an auth failure without prompting for
// a passcode. After that, every cryptographic failure collapses to the
// single generic ErrAuthenticationFailed.
//
// Returns ErrVaultNotInitialized if no vault exists.
// Returns ErrEntryNotFound if the service was never enrolled.
// Returns ErrAuthenticationFailed on any wrong factor or tampered entry.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if opts.Service == "" {
		return nil, fmt.Errorf("service name must not be empty")
	}

	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	entry, err := store.Get(opts.Service)
	if err != nil {
		return nil, err
	}

	if opts.Passcode == "" {
		return nil, verrors.ErrEmptyPasscode
	}

	responder, err := resolveResponder(opts.Responder)
	if err != nil {
		return nil, err
	}

	response, err := responder.ChallengeResponse(ctx, opts.Service)
	if err != nil {
		return nil, err
	}

	plaintext, err := vault.Open(entry, response, opts.Passcode)
	if err != nil {
		return nil, err
	}

	return &DecryptResult{
		Service:   opts.Service,
		Plaintext: plaintext,
		Entry:     entry,
	}, nil
}
