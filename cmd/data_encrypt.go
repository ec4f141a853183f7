package cmd

import (
	"github.com/yubivault/yubivault/internal/configs"
	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptDataPasscode    string
	encryptDataDescription string
	encryptDataNoBackup    bool
)

func init() {
	encryptDataCmd.Flags().StringVarP(&encryptDataPasscode, "passcode", "p", "", "passcode (omit to be prompted; prompting confirms twice)")
	encryptDataCmd.Flags().StringVar(&encryptDataDescription, "description", "", "human label stored with the entry")
	encryptDataCmd.Flags().BoolVar(&encryptDataNoBackup, "no-backup", false, "delete the plaintext directory instead of keeping a backup (dangerous)")
}

// resetDataCommandState resets the data commands' global state for testing.
func resetDataCommandState() {
	encryptDataPasscode = ""
	encryptDataDescription = ""
	encryptDataNoBackup = false
	decryptDataPasscode = ""
	decryptDataTarget = ""
}

var encryptDataCmd = &cobra.Command{
	Use:   "encrypt-data <path>",
	Short: "Encrypts an entire directory tree as one vault entry",
	Long: `Archives the directory tree (recursively), encrypts the archive under your
YubiKey and passcode, and stores it as a single entry named after the
directory. The plaintext directory is then renamed to a
*_unencrypted_backup sibling, or deleted with --no-backup.

The rename or delete only happens after the ciphertext has been durably
written, so a failure at any earlier step leaves the filesystem untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt-data command")

		if err := configs.InitVaultSettings(); err != nil {
			return Logger.ErrorfAndReturn("failed to init vault settings: %v", err)
		}
		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load vault config: %v", err)
		}

		keepBackup := config.Data.KeepBackup && !encryptDataNoBackup
		if !keepBackup {
			Logger.WarnfAlways("the plaintext directory will be deleted after encryption")
		}

		passcode, err := collectPasscode(encryptDataPasscode, true)
		if err != nil {
			Logger.Errorf("Failed to read passcode: %v", err)
			return err
		}

		spinner, cleanup := startSpinner("Archiving and encrypting... touch your YubiKey when it blinks", verbose)
		defer cleanup()

		result, err := workflows.EncryptData(cmd.Context(), workflows.EncryptDataOptions{
			Path:        args[0],
			Passcode:    passcode,
			Description: encryptDataDescription,
			KeepBackup:  keepBackup,
			Responder:   responderOverride,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		finalMessage := ui.Success.Sprint("✓") + " Directory " + ui.Path.Sprint(result.OriginalPath) + " encrypted as " + ui.Highlight.Sprint(result.Name) + "\n"
		if result.Deleted {
			finalMessage += ui.Warning.Sprint("⚠") + " Plaintext directory deleted " + ui.Muted.Sprint("--no-backup") + "\n"
		} else {
			finalMessage += ui.Info.Sprint("→") + " Plaintext moved to " + ui.Path.Sprint(result.BackupPath) + "\n"
		}
		finalMessage += ui.Info.Sprint("→") + " Restore it with " + ui.Code.Sprint("yubivault decrypt-data")
		spinner.FinalMSG = finalMessage
		return nil
	},
}
