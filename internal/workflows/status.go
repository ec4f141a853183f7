package workflows

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/yubivault/yubivault/internal/vault"
)

// ArchiveStatus describes one encrypted directory archive.
type ArchiveStatus struct {
	// Name is the archive entry's name.
	Name string

	// CreatedAt is when the archive was encrypted.
	CreatedAt time.Time

	// OriginalPath is where the directory lived before encryption.
	OriginalPath string

	// Method is the entry's encryption method tag.
	Method vault.Method

	// PlaintextPresent indicates the original path currently exists on
	// disk (e.g. it was already decrypted, or a backup was moved back).
	PlaintextPresent bool
}

// DataStatusOptions configures the data-status workflow.
type DataStatusOptions struct {
	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store
}

// DataStatusResult contains the outcome of a data-status operation.
type DataStatusResult struct {
	// Encrypted indicates at least one directory archive is enrolled.
	Encrypted bool

	// Archives holds metadata for every archive entry, sorted by name.
	Archives []ArchiveStatus
}

// DataStatus reports which directory archives exist in the vault. It is a
// pure metadata probe: no hardware interaction, no passcode, no
// cryptography, safe to call from scripts at any time.
//
// Returns ErrVaultNotInitialized if no vault exists.
func DataStatus(ctx context.Context, opts DataStatusOptions) (*DataStatusResult, error) {
	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}

	result := &DataStatusResult{}
	for name, entry := range doc {
		if !entry.IsFolderArchive() {
			continue
		}

		status := ArchiveStatus{
			Name:         name,
			CreatedAt:    entry.CreatedAt,
			OriginalPath: entry.OriginalPath,
			Method:       entry.EncryptionMethod,
		}
		if entry.OriginalPath != "" {
			if _, err := os.Stat(entry.OriginalPath); err == nil {
				status.PlaintextPresent = true
			}
		}
		result.Archives = append(result.Archives, status)
	}

	sort.Slice(result.Archives, func(i, j int) bool {
		return result.Archives[i].Name < result.Archives[j].Name
	})
	result.Encrypted = len(result.Archives) > 0

	return result, nil
}
