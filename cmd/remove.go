package cmd

import (
	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <service>",
	Short: "Deletes an entry from the vault",
	Long: `Removes the entry for a service. This is irreversible: the ciphertext and
its key material are deleted, and there is no recovery path by design.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		spinner, cleanup := startSpinner("Removing entry...", verbose)
		defer cleanup()

		result, err := workflows.Remove(cmd.Context(), workflows.RemoveOptions{
			Service: args[0],
		})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		kind := "Secret"
		if result.WasArchive {
			kind = "Directory archive"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + kind + " entry " + ui.Highlight.Sprint(result.Service) + " removed\n" +
			ui.Warning.Sprint("⚠") + " The ciphertext is gone; this cannot be undone"
		return nil
	},
}
