package workflows

import (
	"context"
	"sort"
	"time"

	"github.com/yubivault/yubivault/internal/vault"
)

// ServiceInfo is the metadata shown for one enrolled entry.
type ServiceInfo struct {
	// Name is the service name the entry is stored under.
	Name string

	// CreatedAt is when the entry was last (re-)encrypted.
	CreatedAt time.Time

	// Description is the human label stored with the entry.
	Description string

	// Method is the entry's encryption method tag.
	Method vault.Method

	// DataType is empty for secrets, "folder_archive" for directories.
	DataType string
}

// ListOptions configures the list workflow.
type ListOptions struct {
	// Store overrides vault discovery (tests). Nil means discover.
	Store *vault.Store
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Services holds metadata for every entry, sorted by name.
	Services []ServiceInfo

	// StorePath is the vault document that was read.
	StorePath string
}

// List returns metadata for every enrolled entry. It is a pure read:
// no hardware interaction, no passcode, no cryptography.
//
// Returns ErrVaultNotInitialized if no vault exists.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	store, err := resolveStore(opts.Store)
	if err != nil {
		return nil, err
	}

	doc, err := store.Load()
	if err != nil {
		return nil, err
	}

	services := make([]ServiceInfo, 0, len(doc))
	for name, entry := range doc {
		services = append(services, ServiceInfo{
			Name:        name,
			CreatedAt:   entry.CreatedAt,
			Description: entry.Description,
			Method:      entry.EncryptionMethod,
			DataType:    entry.DataType,
		})
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})

	return &ListResult{
		Services:  services,
		StorePath: store.Path,
	}, nil
}
