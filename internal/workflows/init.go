package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yubivault/yubivault/internal/configs"
	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/vault"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Dir is the directory to initialize the vault in. Empty means the
	// current working directory.
	Dir string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// VaultPath is the created .yubivault directory.
	VaultPath string

	// StorePath is the created (empty) vault document.
	StorePath string
}

// Init creates the .yubivault directory, an empty vault document, and the
// default configuration.
//
// Returns ErrVaultAlreadyInitialized if a vault already exists here or in
// any parent directory.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	root := opts.Dir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		root = cwd

		existing, err := configs.FindVaultRoot()
		if err != nil {
			return nil, err
		}
		if existing != "" {
			return nil, fmt.Errorf("%w at %s", verrors.ErrVaultAlreadyInitialized, existing)
		}
	} else {
		if _, err := os.Stat(filepath.Join(root, configs.VaultDirName)); err == nil {
			return nil, fmt.Errorf("%w at %s", verrors.ErrVaultAlreadyInitialized, root)
		}
	}

	vaultPath := filepath.Join(root, configs.VaultDirName)
	if err := os.MkdirAll(vaultPath, 0700); err != nil {
		return nil, fmt.Errorf("creating vault directory: %w", err)
	}

	storePath := filepath.Join(vaultPath, configs.StoreFileName)
	store := vault.NewStore(storePath)
	if err := store.Save(vault.Document{}); err != nil {
		return nil, err
	}

	configPath := filepath.Join(vaultPath, "config.toml")
	if err := configs.SaveTOML(configPath, configs.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	return &InitResult{
		VaultPath: vaultPath,
		StorePath: storePath,
	}, nil
}
