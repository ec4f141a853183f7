package configs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// VaultDirName is the marker directory holding the document and config.
const VaultDirName = ".yubivault"

// StoreFileName is the vault document inside the vault directory.
const StoreFileName = "vault.json"

type VaultSettings struct {
	// VaultRoot is the directory containing the .yubivault directory.
	// Empty when no vault has been initialized.
	VaultRoot string

	// VaultPath is the .yubivault directory itself.
	VaultPath string

	// StorePath is the JSON document holding all encrypted entries.
	StorePath string

	// ConfigPath is the TOML configuration file.
	ConfigPath string
}

var ProjectVaultSettings *VaultSettings

func init() {
	ProjectVaultSettings = &VaultSettings{}
}

// InitVaultSettings locates the vault root and fills in the derived paths.
// A missing vault is not an error here: VaultRoot stays empty and callers
// decide whether that is fatal for their operation.
func InitVaultSettings() error {
	root, err := FindVaultRoot()
	if err != nil {
		return fmt.Errorf("error finding vault root: %w", err)
	}

	if root == "" {
		ProjectVaultSettings = &VaultSettings{}
		return nil
	}

	vaultPath := filepath.Join(root, VaultDirName)
	ProjectVaultSettings = &VaultSettings{
		VaultRoot:  root,
		VaultPath:  vaultPath,
		StorePath:  filepath.Join(vaultPath, StoreFileName),
		ConfigPath: filepath.Join(vaultPath, "config.toml"),
	}

	return nil
}

// FindVaultRoot traverses up directories to find the vault root.
// Returns the path to the root if found, empty string otherwise.
// Stops searching when it reaches one level above the user's home directory.
func FindVaultRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	for {
		// Stop searching at one level above home directory
		if currentDir == path.Join(homeDir, "..") {
			return "", nil
		}

		vaultDir := filepath.Join(currentDir, VaultDirName)
		fileInfo, err := os.Stat(vaultDir)
		// No error means the path exists
		if err == nil {
			if fileInfo.IsDir() {
				return currentDir, nil
			}
		} else if !os.IsNotExist(err) {
			// Return any error that's not "file not found" (like permission issues)
			return "", fmt.Errorf("error checking for %s directory at %s: %w", VaultDirName, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)

		// If we've reached the filesystem root and haven't found the vault
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
