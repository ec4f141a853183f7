package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yubivault/yubivault/internal/configs"
	"github.com/yubivault/yubivault/internal/token"
)

const (
	cliTestResponse = "9a77c14be02d8f3655aa10c9ddee427b88f01234"
	cliTestPasscode = "opensesame longform"
)

// captureOutput runs fn with stdout and stderr redirected to pipes and
// returns what was written to each.
func captureOutput(t *testing.T, fn func() error) (string, string, error) {
	t.Helper()

	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	stderrReader, stderrWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	runErr := fn()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan, <-stderrChan, runErr
}

// runCommand executes the root command with a simulated token and returns
// captured stdout, stderr and the command error (non-nil means exit code 1).
func runCommand(t *testing.T, responder token.Responder, args ...string) (string, string, error) {
	t.Helper()

	ResetGlobalState()
	SetResponder(responder)

	return captureOutput(t, func() error {
		root := GetRootCmd()
		root.SetArgs(args)
		return root.Execute()
	})
}

// setupVault creates a temp project, changes into it, and initializes a
// vault there. Returns the path of the vault document.
func setupVault(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})

	projectDir := t.TempDir()
	if err := os.Chdir(projectDir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	_, _, err = runCommand(t, nil, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	return filepath.Join(projectDir, configs.VaultDirName, configs.StoreFileName)
}

func TestCLI_InitCreatesVault(t *testing.T) {
	storePath := setupVault(t)

	if _, err := os.Stat(storePath); err != nil {
		t.Errorf("Vault document not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(storePath), "config.toml")); err != nil {
		t.Errorf("Default config not created: %v", err)
	}

	// A second init must fail with a non-zero exit.
	stdout, _, err := runCommand(t, nil, "init")
	if err == nil {
		t.Errorf("Expected re-init to fail, got success\nOutput: %s", stdout)
	}
}

func TestCLI_EncryptDecryptRoundTrip(t *testing.T) {
	setupVault(t)
	responder := token.Static{Response: cliTestResponse}

	stdout, _, err := runCommand(t, responder, "encrypt", "infisical", "sk-live-abc123", "-p", cliTestPasscode)
	if err != nil {
		t.Fatalf("encrypt failed: %v\nOutput: %s", err, stdout)
	}
	if !strings.Contains(stdout, "infisical") {
		t.Errorf("Expected service name in output, got: %s", stdout)
	}

	stdout, _, err = runCommand(t, responder, "decrypt", "infisical", "-p", cliTestPasscode)
	if err != nil {
		t.Fatalf("decrypt failed: %v\nOutput: %s", err, stdout)
	}
	if !strings.Contains(stdout, "sk-live-abc123") {
		t.Errorf("Expected secret in output, got: %s", stdout)
	}
}

func TestCLI_TokenQuietContract(t *testing.T) {
	setupVault(t)
	responder := token.Static{Response: cliTestResponse}

	if _, _, err := runCommand(t, responder, "encrypt", "svc", "topsecret", "-p", cliTestPasscode); err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	// Success: stdout carries the secret and nothing else.
	stdout, _, err := runCommand(t, responder, "token", "svc", "-p", cliTestPasscode)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if stdout != "topsecret\n" {
		t.Errorf("Expected only the secret on stdout, got: %q", stdout)
	}

	// Unknown service: non-zero exit, nothing on stdout.
	stdout, _, err = runCommand(t, responder, "token", "never-enrolled", "-p", cliTestPasscode)
	if err == nil {
		t.Error("Expected non-zero exit for unknown service")
	}
	if stdout != "" {
		t.Errorf("Expected empty stdout on failure, got: %q", stdout)
	}

	// Wrong passcode: non-zero exit, nothing on stdout.
	stdout, _, err = runCommand(t, responder, "token", "svc", "-p", "wrong")
	if err == nil {
		t.Error("Expected non-zero exit for wrong passcode")
	}
	if stdout != "" {
		t.Errorf("Expected empty stdout on failure, got: %q", stdout)
	}
}

func TestCLI_ListShowsEnrolledServices(t *testing.T) {
	setupVault(t)
	responder := token.Static{Response: cliTestResponse}

	stdout, _, err := runCommand(t, nil, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "No services enrolled") {
		t.Errorf("Expected empty-vault message, got: %s", stdout)
	}

	if _, _, err := runCommand(t, responder, "encrypt", "github", "tok", "-p", cliTestPasscode); err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	stdout, _, err = runCommand(t, nil, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "github") {
		t.Errorf("Expected enrolled service in output, got: %s", stdout)
	}
}

func TestCLI_PromptUnavailableLeavesStoreUntouched(t *testing.T) {
	storePath := setupVault(t)
	before, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}

	// No --passcode and no terminal: the passcode prompt must fail before
	// any token interaction or document write.
	stdout, _, err := runCommand(t, token.Static{Response: cliTestResponse}, "encrypt", "svc", "secret")
	if err == nil {
		t.Errorf("Expected non-zero exit without a passcode source\nOutput: %s", stdout)
	}

	after, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Store document changed after an aborted encrypt")
	}
}

func TestCLI_RemoveUnknownServiceFails(t *testing.T) {
	setupVault(t)

	stdout, _, err := runCommand(t, nil, "remove", "never-enrolled")
	if err == nil {
		t.Errorf("Expected non-zero exit for unknown service\nOutput: %s", stdout)
	}
}

func TestCLI_NoVaultFails(t *testing.T) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	stdout, _, err := runCommand(t, nil, "list")
	if err == nil {
		t.Errorf("Expected non-zero exit without a vault\nOutput: %s", stdout)
	}
	if !strings.Contains(stdout, "yubivault init") {
		t.Errorf("Expected init hint in output, got: %s", stdout)
	}
}
