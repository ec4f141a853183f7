package cmd

import (
	logger "github.com/yubivault/yubivault/internal/logging"
	"github.com/yubivault/yubivault/internal/token"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// responderOverride substitutes the hardware token in tests. Nil in
	// production, so workflows fall back to the configured ykman responder.
	responderOverride token.Responder

	// RootCmd is the yubivault root command.
	RootCmd = &cobra.Command{
		Use:   "yubivault",
		Short: "A two-factor encrypted secret vault backed by a YubiKey",
		Long: `Yubivault stores service credentials (and whole directory trees) encrypted
under two factors: a YubiKey challenge-response slot and a passcode you
memorize. Losing either factor makes the data unrecoverable by design.

Each entry is independently keyed: its salt and IV are regenerated on
every encryption, and the derived key exists only for the duration of a
single command.

Usage:
  yubivault <command> [flags]

Run 'yubivault help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(tokenCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(encryptDataCmd)
	RootCmd.AddCommand(decryptDataCmd)
	RootCmd.AddCommand(dataStatusCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	responderOverride = nil
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetDataCommandState()
	resetCobraFlagState(RootCmd)
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// SetResponder substitutes the hardware token responder for testing.
func SetResponder(r token.Responder) {
	responderOverride = r
}

// resetCobraFlagState clears flag Changed state to prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
