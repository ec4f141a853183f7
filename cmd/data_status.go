package cmd

import (
	"strings"

	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var dataStatusCmd = &cobra.Command{
	Use:   "data-status",
	Short: "Shows which directory archives are encrypted",
	Long: `Reports every directory archive entry with its original path and creation
time. This is a pure metadata probe: no YubiKey touch, no passcode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting data-status command")
		spinner, cleanup := startSpinner("Reading vault...", verbose)
		defer cleanup()

		result, err := workflows.DataStatus(cmd.Context(), workflows.DataStatusOptions{})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		if !result.Encrypted {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No encrypted directories in vault\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault encrypt-data <path>") + " to encrypt one"
			return nil
		}

		var finalMessage strings.Builder
		finalMessage.WriteString(ui.Success.Sprint("✓") + " Encrypted directories:\n\n")
		for _, archive := range result.Archives {
			finalMessage.WriteString("  " + ui.Highlight.Sprint(archive.Name) + "\n")
			finalMessage.WriteString("    " + ui.Path.Sprint(archive.OriginalPath) + "\n")
			finalMessage.WriteString("    " + ui.Muted.Sprintf("%s, encrypted %s", archive.Method, archive.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
			if archive.PlaintextPresent {
				finalMessage.WriteString("    " + ui.Warning.Sprint("⚠ plaintext currently present at the original path") + "\n")
			}
		}

		spinner.FinalMSG = finalMessage.String()
		return nil
	},
}
