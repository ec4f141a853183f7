package utils

import (
	"bytes"
	"fmt"
	"os"

	verrors "github.com/yubivault/yubivault/internal/errors"
	"golang.org/x/term"
)

// ReadPasscode prompts the user for a passcode without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPasscode(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passcode: stdin is not a terminal (use --passcode for non-interactive use)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passcode, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passcode: %w", err)
	}

	return passcode, nil
}

// ReadPasscodeWithConfirm prompts for a passcode twice and requires both
// entries to match. A silent typo in an unconfirmed passcode would make the
// secret unrecoverable, so enrollment always confirms.
func ReadPasscodeWithConfirm(prompt, confirmPrompt string) ([]byte, error) {
	passcode, err := ReadPasscode(prompt)
	if err != nil {
		return nil, err
	}

	confirm, err := ReadPasscode(confirmPrompt)
	if err != nil {
		zeroBytes(passcode)
		return nil, err
	}

	if !bytes.Equal(passcode, confirm) {
		zeroBytes(passcode)
		zeroBytes(confirm)
		return nil, verrors.ErrPasscodeMismatch
	}

	zeroBytes(confirm)
	return passcode, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// zeroBytes overwrites a byte slice with zeros.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
