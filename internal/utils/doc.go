// Package utils provides small helpers shared across the vault's commands:
// hidden passcode prompting via the terminal, and stdin plumbing for piped
// secret input.
package utils
