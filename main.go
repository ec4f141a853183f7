package main

import (
	"os"

	"github.com/yubivault/yubivault/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		// Commands render their own failure messages; the error here only
		// drives the exit code so scripts can compose with the CLI.
		os.Exit(1)
	}
}
