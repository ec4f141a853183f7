package workflows

import (
	"fmt"

	"github.com/yubivault/yubivault/internal/configs"
	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/token"
	"github.com/yubivault/yubivault/internal/vault"
)

// resolveStore returns the explicit store when given, otherwise discovers
// the vault root from the working directory.
//
// Returns ErrVaultNotInitialized when no vault exists.
func resolveStore(explicit *vault.Store) (*vault.Store, error) {
	if explicit != nil {
		return explicit, nil
	}

	if err := configs.InitVaultSettings(); err != nil {
		return nil, fmt.Errorf("initializing vault settings: %w", err)
	}

	if configs.ProjectVaultSettings.VaultRoot == "" {
		return nil, verrors.ErrVaultNotInitialized
	}

	return vault.NewStore(configs.ProjectVaultSettings.StorePath), nil
}

// resolveResponder returns the explicit responder when given, otherwise
// builds a ykman responder using the configured slot.
//
// Must be called after resolveStore so the config path is known.
func resolveResponder(explicit token.Responder) (token.Responder, error) {
	if explicit != nil {
		return explicit, nil
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading vault config: %w", err)
	}

	return &token.YkmanResponder{Slot: config.Token.Slot}, nil
}
