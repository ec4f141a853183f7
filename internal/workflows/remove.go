package workflows

import (
	"context"
	"fmt"

	"github.com/yubivault/yubivault/internal/vault"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Service is the name of the entry to delete.
	Service string

	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Service is the name of the deleted entry.
	Service string

	// WasArchive indicates the deleted entry was a directory archive.
	WasArchive bool
}

// Remove deletes an entry from the vault. There is no recovery: once the
// entry is gone, the ciphertext and its salt/IV are gone with it.
//
// Returns ErrVaultNotInitialized if no vault exists.
// Returns ErrEntryNotFound if the service was never enrolled.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
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

	if err := store.Delete(opts.Service); err != nil {
		return nil, err
	}

	return &RemoveResult{
		Service:    opts.Service,
		WasArchive: entry.IsFolderArchive(),
	}, nil
}
