package errors

import "errors"

// Hardware errors indicate the YubiKey or its tooling could not produce a
// challenge response. They are distinct so the CLI can give an actionable
// message, but callers treat all three as "no key derivation possible".
var (
	// ErrTokenToolMissing indicates the ykman executable is not installed.
	ErrTokenToolMissing = errors.New("ykman is not installed or not in PATH")

	// ErrTokenTimeout indicates the YubiKey was not touched within the wait window.
	ErrTokenTimeout = errors.New("timed out waiting for YubiKey touch")

	// ErrTokenUnavailable indicates the YubiKey is absent or returned an error.
	ErrTokenUnavailable = errors.New("YubiKey is not available")
)

// Vault state errors indicate issues with the vault directory or its document.
var (
	// ErrVaultNotInitialized indicates no .yubivault directory was found.
	ErrVaultNotInitialized = errors.New("vault has not been initialized")

	// ErrVaultAlreadyInitialized indicates the vault has already been set up.
	ErrVaultAlreadyInitialized = errors.New("vault has already been initialized")

	// ErrStoreCorrupt indicates the vault document could not be parsed.
	ErrStoreCorrupt = errors.New("vault document is corrupt")

	// ErrEntryNotFound indicates the service was never enrolled in the vault.
	ErrEntryNotFound = errors.New("service not found in vault")
)

// Cryptographic errors indicate failures during encryption or decryption.
var (
	// ErrAuthenticationFailed indicates decryption failed. Wrong passcode,
	// wrong token and tampered ciphertext are deliberately not distinguished.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnknownMethod indicates the entry carries an unsupported encryption method tag.
	ErrUnknownMethod = errors.New("unknown encryption method")

	// ErrPasscodeMismatch indicates the passcode confirmation did not match.
	ErrPasscodeMismatch = errors.New("passcodes do not match")

	// ErrEmptyPasscode indicates no passcode was supplied.
	ErrEmptyPasscode = errors.New("passcode must not be empty")
)

// Archive errors indicate failures building or extracting a directory archive.
var (
	// ErrArchiveFailed indicates the directory tree could not be archived or restored.
	ErrArchiveFailed = errors.New("failed to process directory archive")

	// ErrDirectoryNotFound indicates the target directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrBackupExists indicates the unencrypted backup path is already occupied.
	ErrBackupExists = errors.New("backup path already exists")
)
