package cmd

import (
	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	decryptDataPasscode string
	decryptDataTarget   string
)

func init() {
	decryptDataCmd.Flags().StringVarP(&decryptDataPasscode, "passcode", "p", "", "passcode (omit to be prompted)")
	decryptDataCmd.Flags().StringVar(&decryptDataTarget, "to", "", "restore to this path instead of the original location")
}

var decryptDataCmd = &cobra.Command{
	Use:   "decrypt-data [name]",
	Short: "Restores an encrypted directory tree",
	Long: `Decrypts a directory archive entry and re-materializes the tree at its
original location, or at --to. The name can be omitted when the vault
holds exactly one directory archive; its stored metadata makes the
restore location unambiguous.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt-data command")

		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		passcode, err := collectPasscode(decryptDataPasscode, false)
		if err != nil {
			Logger.Errorf("Failed to read passcode: %v", err)
			return err
		}

		spinner, cleanup := startSpinner("Decrypting and restoring... touch your YubiKey when it blinks", verbose)
		defer cleanup()

		result, err := workflows.DecryptData(cmd.Context(), workflows.DecryptDataOptions{
			Name:       name,
			TargetPath: decryptDataTarget,
			Passcode:   passcode,
			Responder:  responderOverride,
		})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Directory archive " + ui.Highlight.Sprint(result.Name) + " restored to " + ui.Path.Sprint(result.TargetPath) + "\n" +
			ui.Info.Sprint("→") + " The encrypted entry is still in the vault; remove it with " + ui.Code.Sprint("yubivault remove "+result.Name)
		return nil
	},
}
