package cmd

import (
	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/utils"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptPasscode    string
	encryptDescription string
	encryptLegacyCBC   bool
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptPasscode, "passcode", "p", "", "passcode (omit to be prompted; prompting confirms twice)")
	encryptCmd.Flags().StringVar(&encryptDescription, "description", "", "human label stored with the entry")
	encryptCmd.Flags().BoolVar(&encryptLegacyCBC, "cbc", false, "write the legacy unauthenticated AES-256-CBC format")
}

// resetEncryptCommandState resets the encrypt command's global state for testing.
func resetEncryptCommandState() {
	encryptPasscode = ""
	encryptDescription = ""
	encryptLegacyCBC = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt <service> [secret]",
	Short: "Encrypts a secret under your YubiKey and passcode",
	Long: `Stores a secret for a service, encrypted under a key derived from your
YubiKey's challenge-response to the service name plus your passcode.

The secret can be passed as an argument, piped on stdin, or entered at a
hidden prompt. When the passcode is prompted it must be entered twice;
a mismatch aborts without touching the vault.

Re-encrypting an existing service replaces its entry with fresh key
material (new salt and IV). Other entries are never touched.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")
		service := args[0]

		plaintext, err := collectSecret(args)
		if err != nil {
			Logger.Errorf("Failed to read secret: %v", err)
			return err
		}

		passcode, err := collectPasscode(encryptPasscode, true)
		if err != nil {
			Logger.Errorf("Failed to read passcode: %v", err)
			return err
		}

		spinner, cleanup := startSpinner("Touch your YubiKey when it blinks...", verbose)
		defer cleanup()

		result, err := workflows.Encrypt(cmd.Context(), workflows.EncryptOptions{
			Service:     service,
			Plaintext:   plaintext,
			Passcode:    passcode,
			Description: encryptDescription,
			LegacyCBC:   encryptLegacyCBC,
			Responder:   responderOverride,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		action := "encrypted"
		if result.Replaced {
			action = "re-encrypted"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret " + action + " for " + ui.Highlight.Sprint(result.Service) + "\n" +
			ui.Info.Sprint("→") + " Retrieve it with " + ui.Code.Sprint("yubivault decrypt "+result.Service)
		return nil
	},
}

// collectSecret resolves the plaintext: argument, piped stdin, or hidden prompt.
func collectSecret(args []string) ([]byte, error) {
	if len(args) == 2 {
		return []byte(args[1]), nil
	}

	if !utils.IsTerminal() {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		return utils.TrimTrailingNewline(data), nil
	}

	secret, err := utils.ReadPasscode("Enter secret: ")
	if err != nil {
		return nil, err
	}
	return secret, nil
}
