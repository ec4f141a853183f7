package cmd

import (
	"fmt"

	"github.com/yubivault/yubivault/internal/workflows"

	"github.com/spf13/cobra"
)

var tokenPasscode string

func init() {
	tokenCmd.Flags().StringVarP(&tokenPasscode, "passcode", "p", "", "passcode (omit to be prompted on stderr)")
}

var tokenCmd = &cobra.Command{
	Use:   "token <service>",
	Short: "Prints only the decrypted secret (for scripts)",
	Long: `Machine-readable decrypt: on success the secret is the only thing written
to stdout; on any failure nothing is printed and the exit code is non-zero,
so the command composes safely in shell pipelines:

  API_KEY=$(yubivault token infisical -p "$PASSCODE")`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		passcode, err := collectPasscode(tokenPasscode, false)
		if err != nil {
			return err
		}

		result, err := workflows.Decrypt(cmd.Context(), workflows.DecryptOptions{
			Service:   args[0],
			Passcode:  passcode,
			Responder: responderOverride,
		})
		if err != nil {
			// Quiet by contract: the non-zero exit code is the only signal.
			return err
		}

		fmt.Println(string(result.Plaintext))
		return nil
	},
}
