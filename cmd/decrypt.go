package cmd

import (
	"fmt"

	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var decryptPasscode string

func init() {
	decryptCmd.Flags().StringVarP(&decryptPasscode, "passcode", "p", "", "passcode (omit to be prompted)")
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptPasscode = ""
	tokenPasscode = ""
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <service>",
	Short: "Decrypts a stored secret and prints it",
	Long: `Recovers a secret by re-deriving its key from the YubiKey's response and
your passcode. The stored entry is not modified; decryption can be
repeated any number of times.

For machine-readable output (only the secret on stdout), use
'yubivault token <service>' instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")
		service := args[0]

		// Don't prompt for a passcode for a service that was never enrolled.
		if decryptPasscode == "" {
			if err := checkServiceExists(cmd, service); err != nil {
				return err
			}
		}

		passcode, err := collectPasscode(decryptPasscode, false)
		if err != nil {
			Logger.Errorf("Failed to read passcode: %v", err)
			return err
		}

		spinner, cleanup := startSpinner("Touch your YubiKey when it blinks...", verbose)
		defer cleanup()

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			Service:   service,
			Passcode:  passcode,
			Responder: responderOverride,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret for " + ui.Highlight.Sprint(result.Service) + ":\n" +
			string(result.Plaintext)
		return nil
	},
}

// checkServiceExists verifies enrollment via a metadata read, so the user
// is not asked for a passcode (or a touch) for an unknown service.
func checkServiceExists(cmd *cobra.Command, service string) error {
	listResult, err := workflows.List(cmd.Context(), workflows.ListOptions{})
	if err != nil {
		fmt.Print(ui.EnsureNewline(failureMessage(err)))
		return err
	}
	for _, info := range listResult.Services {
		if info.Name == service {
			return nil
		}
	}
	err = fmt.Errorf("service not found in vault: %s", service)
	fmt.Print(ui.EnsureNewline(ui.Error.Sprint("✗") + " Service " + ui.Highlight.Sprint(service) + " is not enrolled\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault list") + " to see enrolled services"))
	return err
}
