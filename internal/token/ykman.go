package token

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// TouchWindow bounds how long a challenge waits for the user to touch the
// key. Once a calculate call is in flight there is no cancellation beyond
// this deadline.
const TouchWindow = 30 * time.Second

// YkmanResponder obtains challenge responses by invoking the ykman CLI
// against a YubiKey OTP slot programmed for HMAC-SHA1 challenge-response.
type YkmanResponder struct {
	// Slot is the OTP slot to use (1 or 2).
	Slot int

	// Tool overrides the ykman executable path. Empty means "ykman" on PATH.
	Tool string

	// Timeout overrides the touch window. Zero means TouchWindow.
	Timeout time.Duration
}

// ChallengeResponse sends the hex-encoded challenge to the token and returns
// its response string.
//
// Returns ErrTokenToolMissing if ykman is not installed.
// Returns ErrTokenTimeout if the key was not touched within the touch window.
// Returns ErrTokenUnavailable if the key is absent or reports an error.
func (r *YkmanResponder) ChallengeResponse(ctx context.Context, challenge string) (string, error) {
	tool := r.Tool
	if tool == "" {
		tool = "ykman"
	}

	if _, err := exec.LookPath(tool); err != nil {
		return "", fmt.Errorf("%w: %v", verrors.ErrTokenToolMissing, err)
	}

	// ykman expects the challenge as a hex string.
	hexChallenge := hex.EncodeToString([]byte(challenge))

	window := r.Timeout
	if window == 0 {
		window = TouchWindow
	}
	ctx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	// #nosec G204 -- slot is validated config (1 or 2) and the challenge is hex-encoded.
	cmd := exec.CommandContext(ctx, tool, "otp", "calculate", strconv.Itoa(r.Slot), hexChallenge)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s", verrors.ErrTokenTimeout, window)
	}
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s", verrors.ErrTokenUnavailable, detail)
	}

	response := strings.TrimSpace(stdout.String())
	if response == "" {
		return "", fmt.Errorf("%w: empty response from slot %d", verrors.ErrTokenUnavailable, r.Slot)
	}

	return response, nil
}
