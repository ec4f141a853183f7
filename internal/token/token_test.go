package token

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// writeStubTool creates an executable shell script standing in for ykman.
func writeStubTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ykman-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil { // #nosec G306
		t.Fatalf("Failed to write stub tool: %v", err)
	}
	return path
}

func TestStatic(t *testing.T) {
	responder := Static{Response: "abc123"}

	response, err := responder.ChallengeResponse(context.Background(), "github")
	if err != nil {
		t.Fatalf("ChallengeResponse failed: %v", err)
	}
	if response != "abc123" {
		t.Errorf("Expected canned response, got %q", response)
	}

	failing := Static{Err: verrors.ErrTokenUnavailable}
	if _, err := failing.ChallengeResponse(context.Background(), "github"); !errors.Is(err, verrors.ErrTokenUnavailable) {
		t.Errorf("Expected configured error, got: %v", err)
	}
}

func TestYkmanResponder_ToolMissing(t *testing.T) {
	responder := &YkmanResponder{
		Slot: 2,
		Tool: "definitely-not-a-real-binary-7f3a",
	}

	_, err := responder.ChallengeResponse(context.Background(), "github")
	if !errors.Is(err, verrors.ErrTokenToolMissing) {
		t.Errorf("Expected ErrTokenToolMissing, got: %v", err)
	}
}

func TestYkmanResponder_HexEncodedChallenge(t *testing.T) {
	// The stub echoes its last argument, so the response is exactly what
	// the responder sent as the challenge.
	responder := &YkmanResponder{
		Slot: 2,
		Tool: writeStubTool(t, `echo "$4"`),
	}

	response, err := responder.ChallengeResponse(context.Background(), "github")
	if err != nil {
		t.Fatalf("ChallengeResponse failed: %v", err)
	}
	if want := hex.EncodeToString([]byte("github")); response != want {
		t.Errorf("Expected hex-encoded challenge %q, got %q", want, response)
	}
}

func TestYkmanResponder_TouchTimeout(t *testing.T) {
	responder := &YkmanResponder{
		Slot:    2,
		Tool:    writeStubTool(t, "sleep 5"),
		Timeout: 50 * time.Millisecond,
	}

	_, err := responder.ChallengeResponse(context.Background(), "github")
	if !errors.Is(err, verrors.ErrTokenTimeout) {
		t.Errorf("Expected ErrTokenTimeout, got: %v", err)
	}
}

func TestYkmanResponder_EmptyResponse(t *testing.T) {
	responder := &YkmanResponder{
		Slot: 2,
		Tool: writeStubTool(t, "true"),
	}

	_, err := responder.ChallengeResponse(context.Background(), "github")
	if !errors.Is(err, verrors.ErrTokenUnavailable) {
		t.Errorf("Expected ErrTokenUnavailable for empty output, got: %v", err)
	}
}
