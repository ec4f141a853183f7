package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/token"
	"github.com/yubivault/yubivault/internal/vault"
)

// BackupSuffix is appended to the original directory name when the
// plaintext tree is kept after encryption.
const BackupSuffix = "_unencrypted_backup"

// EncryptDataOptions configures the encrypt-data workflow.
type EncryptDataOptions struct {
	// Path is the directory to archive and encrypt.
	Path string

	// Passcode is the second factor.
	Passcode string

	// Description is a human label stored with the entry.
	Description string

	// KeepBackup renames the plaintext directory to a *_unencrypted_backup
	// sibling after encryption. When false, the directory is deleted:
	// explicitly dangerous and opt-in only.
	KeepBackup bool

	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store

	// Responder overrides the hardware token (tests). Nil means ykman.
	Responder token.Responder
}

// EncryptDataResult contains the outcome of an encrypt-data operation.
type EncryptDataResult struct {
	// Name is the entry name (the directory's base name), which is also
	// the challenge sent to the token.
	Name string

	// OriginalPath is the absolute path that was encrypted.
	OriginalPath string

	// BackupPath is where the plaintext tree was moved, empty when deleted.
	BackupPath string

	// Deleted indicates the plaintext tree was removed instead of backed up.
	Deleted bool
}

// EncryptData archives a full directory tree in memory, encrypts the
// archive as a single vault entry, and only then renames or deletes the
// plaintext directory. Any failure before the ciphertext is durably
// written leaves the filesystem and the vault exactly as they were: no
// half-renamed, half-deleted state.
//
// Returns ErrVaultNotInitialized if no vault exists.
// Returns ErrDirectoryNotFound if the path does not exist.
// Returns ErrBackupExists if the backup destination is already occupied.
// Returns ErrArchiveFailed if the tree cannot be archived.
func EncryptData(ctx context.Context, opts EncryptDataOptions) (*EncryptDataResult, error) {
	if opts.Passcode == "" {
		return nil, verrors.ErrEmptyPasscode
	}

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving directory path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", verrors.ErrDirectoryNotFound, absPath)
		}
		return nil, fmt.Errorf("checking directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", verrors.ErrDirectoryNotFound, absPath)
	}

	name := filepath.Base(absPath)

	backupPath := absPath + BackupSuffix
	if opts.KeepBackup {
		if _, err := os.Stat(backupPath); err == nil {
			return nil, fmt.Errorf("%w: %s", verrors.ErrBackupExists, backupPath)
		}
	}

	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	responder, err := resolveResponder(opts.Responder)
	if err != nil {
		return nil, err
	}

	response, err := responder.ChallengeResponse(ctx, name)
	if err != nil {
		return nil, err
	}

	archive, err := vault.ArchiveDirectory(absPath)
	if err != nil {
		return nil, err
	}

	entry, err := vault.Seal(response, opts.Passcode, archive, vault.MethodAES256GCM)
	if err != nil {
		return nil, fmt.Errorf("encrypting archive for %s: %w", name, err)
	}
	entry.Description = opts.Description
	entry.OriginalPath = absPath
	entry.FolderName = name
	entry.DataType = vault.DataTypeFolderArchive

	if err := store.Put(name, *entry); err != nil {
		return nil, err
	}

	// The ciphertext is durably stored; only now is the plaintext tree
	// moved out of the way or removed.
	result := &EncryptDataResult{
		Name:         name,
		OriginalPath: absPath,
	}

	if opts.KeepBackup {
		if err := os.Rename(absPath, backupPath); err != nil {
			return nil, fmt.Errorf("encrypted entry stored, but failed to move plaintext to backup: %w", err)
		}
		result.BackupPath = backupPath
		return result, nil
	}

	if err := os.RemoveAll(absPath); err != nil {
		return nil, fmt.Errorf("encrypted entry stored, but failed to remove plaintext directory: %w", err)
	}
	result.Deleted = true
	return result, nil
}

// DecryptDataOptions configures the decrypt-data workflow.
type DecryptDataOptions struct {
	// Name selects which archive entry to restore. Optional when the
	// vault holds exactly one directory archive.
	Name string

	// TargetPath overrides the restore location. Empty means the entry's
	// original path.
	TargetPath string

	// Passcode is the second factor.
	Passcode string

	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store

	// Responder overrides the hardware token (tests). Nil means ykman.
	Responder token.Responder
}

// DecryptDataResult contains the outcome of a decrypt-data operation.
type DecryptDataResult struct {
	// Name is the restored entry's name.
	Name string

	// TargetPath is where the directory tree was re-materialized.
	TargetPath string
}

// DecryptData decrypts a directory archive entry and re-materializes the
// tree at its original location or an explicit override path. The stored
// entry is not modified; decryption can be repeated any number of times.
//
// Returns ErrVaultNotInitialized if no vault exists.
// Returns ErrEntryNotFound if no matching archive entry exists.
// Returns ErrAuthenticationFailed on any wrong factor or tampered entry.
// Returns ErrArchiveFailed if extraction fails.
func DecryptData(ctx context.Context, opts DecryptDataOptions) (*DecryptDataResult, error) {
	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	name, entry, err := findArchiveEntry(store, opts.Name)
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

	response, err := responder.ChallengeResponse(ctx, name)
	if err != nil {
		return nil, err
	}

	archive, err := vault.Open(entry, response, opts.Passcode)
	if err != nil {
		return nil, err
	}

	target := opts.TargetPath
	if target == "" {
		target = entry.OriginalPath
	}
	if target == "" {
		return nil, fmt.Errorf("%w: entry %s has no original path and no target was given", verrors.ErrStoreCorrupt, name)
	}

	if err := vault.ExtractArchive(archive, target); err != nil {
		return nil, err
	}

	return &DecryptDataResult{
		Name:       name,
		TargetPath: target,
	}, nil
}

// findArchiveEntry locates a directory archive entry by name, or the only
// archive entry when no name is given.
func findArchiveEntry(store *vault.Store, name string) (string, vault.Entry, error) {
	doc, err := store.Load()
	if err != nil {
		return "", vault.Entry{}, err
	}

	if name != "" {
		entry, ok := doc[name]
		if !ok || !entry.IsFolderArchive() {
			return "", vault.Entry{}, fmt.Errorf("%w: no directory archive named %s", verrors.ErrEntryNotFound, name)
		}
		return name, entry, nil
	}

	var found string
	var count int
	for service, entry := range doc {
		if entry.IsFolderArchive() {
			found = service
			count++
		}
	}

	switch count {
	case 0:
		return "", vault.Entry{}, fmt.Errorf("%w: no directory archive in vault", verrors.ErrEntryNotFound)
	case 1:
		return found, doc[found], nil
	default:
		return "", vault.Entry{}, fmt.Errorf("vault holds %d directory archives, specify one by name", count)
	}
}
