package cmd

import (
	"fmt"
	"strings"

	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/vault"
	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists enrolled services and their metadata",
	Long: `Shows every entry's name, creation time, description and encryption method.
This is a pure metadata read: no YubiKey touch, no passcode, no decryption.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		spinner, cleanup := startSpinner("Reading vault...", verbose)
		defer cleanup()

		result, err := workflows.List(cmd.Context(), workflows.ListOptions{})
		if err != nil {
			spinner.FinalMSG = failureMessage(err)
			return err
		}

		if len(result.Services) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No services enrolled\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault encrypt <service>") + " to store one"
			return nil
		}

		var finalMessage strings.Builder
		finalMessage.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" %d entr%s in vault:\n\n", len(result.Services), pluralY(len(result.Services))))
		for _, info := range result.Services {
			kind := ""
			if info.DataType == vault.DataTypeFolderArchive {
				kind = " " + ui.Muted.Sprint("directory archive")
			}
			finalMessage.WriteString("  " + ui.Highlight.Sprint(info.Name) + kind + "\n")
			if info.Description != "" {
				finalMessage.WriteString("    " + info.Description + "\n")
			}
			finalMessage.WriteString("    " + ui.Muted.Sprintf("%s, created %s", info.Method, info.CreatedAt.Local().Format("2006-01-02 15:04")) + "\n")
		}

		spinner.FinalMSG = finalMessage.String()
		return nil
	},
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
