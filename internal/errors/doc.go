// Package errors provides typed error values for the yubivault application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Hardware errors: The YubiKey or its tooling is unavailable
//     (ErrTokenToolMissing, ErrTokenTimeout, ErrTokenUnavailable)
//   - Vault errors: Vault state issues (ErrVaultNotInitialized, ErrStoreCorrupt)
//   - Crypto errors: Authentication and decryption failures (ErrAuthenticationFailed)
//   - Archive errors: Directory archiving failures (ErrArchiveFailed)
//
// # Usage
//
// Return errors from internal packages:
//
//	if entry, ok := doc[service]; !ok {
//	    return nil, errors.ErrEntryNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, verrors.ErrEntryNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading entry for service %s: %w", service, errors.ErrEntryNotFound)
package errors
