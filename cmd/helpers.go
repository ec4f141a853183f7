package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	verrors "github.com/yubivault/yubivault/internal/errors"
	"github.com/yubivault/yubivault/internal/ui"
	"github.com/yubivault/yubivault/internal/utils"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function automatically calls ui.EnsureNewline() on the final
// message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// failureMessage maps a workflow error to a short, actionable message for
// the spinner's FinalMSG. The returned error is what RunE should propagate
// so the process exits 1.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, verrors.ErrVaultNotInitialized):
		return ui.Error.Sprint("✗") + " No vault found\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault init") + " first"
	case errors.Is(err, verrors.ErrVaultAlreadyInitialized):
		return ui.Error.Sprint("✗") + " " + err.Error()
	case errors.Is(err, verrors.ErrPasscodeMismatch):
		return ui.Error.Sprint("✗") + " Passcodes did not match; nothing was stored"
	case errors.Is(err, verrors.ErrEmptyPasscode):
		return ui.Error.Sprint("✗") + " The passcode must not be empty"
	case errors.Is(err, verrors.ErrDirectoryNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error()
	case errors.Is(err, verrors.ErrTokenToolMissing):
		return ui.Error.Sprint("✗") + " The " + ui.Code.Sprint("ykman") + " tool is not installed\n" +
			ui.Info.Sprint("→") + " Install it with " + ui.Code.Sprint("pip install yubikey-manager")
	case errors.Is(err, verrors.ErrTokenTimeout):
		return ui.Error.Sprint("✗") + " Timed out waiting for the YubiKey touch\n" +
			ui.Info.Sprint("→") + " Touch the key when it blinks and try again"
	case errors.Is(err, verrors.ErrTokenUnavailable):
		return ui.Error.Sprint("✗") + " YubiKey not available\n" +
			ui.Info.Sprint("→") + " Plug in the key and try again\n" +
			ui.Muted.Sprint(err.Error())
	case errors.Is(err, verrors.ErrEntryNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("yubivault list") + " to see enrolled services"
	case errors.Is(err, verrors.ErrAuthenticationFailed):
		return ui.Error.Sprint("✗") + " Authentication failed\n" +
			ui.Info.Sprint("→") + " Wrong passcode, wrong YubiKey, or the entry was tampered with"
	case errors.Is(err, verrors.ErrStoreCorrupt):
		return ui.Error.Sprint("✗") + " The vault document could not be read\n" +
			ui.Muted.Sprint(err.Error())
	case errors.Is(err, verrors.ErrBackupExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Move the old backup out of the way first"
	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// collectPasscode resolves the passcode for a crypto command: the --passcode
// flag when given, otherwise a hidden prompt. Enrollment prompts twice and
// requires both entries to match before any work happens, so a typo can
// never produce an unrecoverable entry.
func collectPasscode(flagValue string, confirm bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if confirm {
		passcode, err := utils.ReadPasscodeWithConfirm("Enter passcode: ", "Confirm passcode: ")
		if err != nil {
			return "", err
		}
		return string(passcode), nil
	}

	passcode, err := utils.ReadPasscode("Enter passcode: ")
	if err != nil {
		return "", err
	}
	return string(passcode), nil
}
