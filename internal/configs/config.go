package configs

import (
	"fmt"
	"os"
)

// Config is the vault's TOML configuration, stored at .yubivault/config.toml.
type Config struct {
	Token TokenConfig `toml:"token"`
	Data  DataConfig  `toml:"data"`
}

type TokenConfig struct {
	// Slot is the YubiKey OTP slot programmed for HMAC-SHA1 challenge-response.
	Slot int `toml:"slot"`
}

type DataConfig struct {
	// KeepBackup controls whether encrypt-data renames the plaintext
	// directory to a *_unencrypted_backup sibling instead of deleting it.
	KeepBackup bool `toml:"keep_backup"`
}

// DefaultConfig returns the configuration written by `yubivault init`.
func DefaultConfig() *Config {
	return &Config{
		Token: TokenConfig{Slot: 2},
		Data:  DataConfig{KeepBackup: true},
	}
}

// LoadConfig loads the vault configuration, falling back to defaults when
// the file does not exist.
// Note: Caller should ensure InitVaultSettings is called before calling this function.
func LoadConfig() (*Config, error) {
	configPath := ProjectVaultSettings.ConfigPath

	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load vault config: %w", err)
	}

	if config.Token.Slot != 1 && config.Token.Slot != 2 {
		return nil, fmt.Errorf("invalid token slot %d in config: must be 1 or 2", config.Token.Slot)
	}

	return config, nil
}

// SaveConfig saves the vault configuration.
// Note: Caller should ensure InitVaultSettings is called before calling this function.
func SaveConfig(config *Config) error {
	configPath := ProjectVaultSettings.ConfigPath
	if configPath == "" {
		return fmt.Errorf("cannot save config: vault settings are not initialized")
	}

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save vault config: %w", err)
	}

	return nil
}
