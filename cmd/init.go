package cmd

import (
	"fmt"

	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes a vault in the current directory",
	Long: `Creates a .yubivault directory with an empty vault document and a default
configuration (YubiKey OTP slot 2, backups enabled for directory encryption).

The vault is found by walking up from the working directory, so commands
work from anywhere inside the project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing vault...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		// Stop the spinner before printing the banner.
		spinner.Stop()
		fmt.Println()
		banner := figure.NewColorFigure("yubivault", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault initialized at " + ui.Path.Sprint(result.VaultPath) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault encrypt <service>") + " to store your first secret\n" +
			ui.Info.Sprint("→") + " Slot 2 of your YubiKey must be programmed for HMAC-SHA1 challenge-response " +
			ui.Muted.Sprint("ykman otp chalresp --touch --generate 2")
		return nil
	},
}
