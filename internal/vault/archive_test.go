package vault

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

// buildTestTree creates a directory with nested subdirectories and files.
func buildTestTree(t *testing.T) (string, map[string]string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "data_folder")

	files := map[string]string{
		"config.yaml":             "debug: true\n",
		"notes/todo.txt":          "rotate keys",
		"notes/archive/old.txt":   "already rotated",
		"certs/server/server.pem": "-----BEGIN CERT-----",
	}
	for rel, content := range files {
		writeTestFile(t, filepath.Join(root, rel), content)
	}

	// An empty directory must survive the round trip too.
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatalf("Failed to create empty dir: %v", err)
	}

	return root, files
}

func TestArchive_RoundTrip(t *testing.T) {
	root, files := buildTestTree(t)

	data, err := ArchiveDirectory(root)
	if err != nil {
		t.Fatalf("ArchiveDirectory failed: %v", err)
	}

	target := filepath.Join(t.TempDir(), "restored")
	if err := ExtractArchive(data, target); err != nil {
		t.Fatalf("ExtractArchive failed: %v", err)
	}

	for rel, want := range files {
		got, err := os.ReadFile(filepath.Join(target, rel))
		if err != nil {
			t.Fatalf("Restored file missing: %s: %v", rel, err)
		}
		if !bytes.Equal(got, []byte(want)) {
			t.Errorf("Content mismatch for %s: got %q, want %q", rel, got, want)
		}
	}

	info, err := os.Stat(filepath.Join(target, "empty"))
	if err != nil || !info.IsDir() {
		t.Error("Empty directory was not restored")
	}
}

func TestArchiveDirectory_MissingPath(t *testing.T) {
	if _, err := ArchiveDirectory(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, verrors.ErrDirectoryNotFound) {
		t.Errorf("Expected ErrDirectoryNotFound, got: %v", err)
	}
}

func TestArchiveDirectory_FileNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	writeTestFile(t, path, "not a directory")

	if _, err := ArchiveDirectory(path); !errors.Is(err, verrors.ErrArchiveFailed) {
		t.Errorf("Expected ErrArchiveFailed, got: %v", err)
	}
}

func TestExtractArchive_RejectsPathTraversal(t *testing.T) {
	// Hand-craft an archive with an escaping member.
	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzWriter)

	content := []byte("evil")
	if err := tarWriter.WriteHeader(&tar.Header{
		Name: "../escaped.txt",
		Mode: 0644,
		Size: int64(len(content)),
	}); err != nil {
		t.Fatalf("Failed to write tar header: %v", err)
	}
	if _, err := tarWriter.Write(content); err != nil {
		t.Fatalf("Failed to write tar body: %v", err)
	}
	if err := tarWriter.Close(); err != nil {
		t.Fatalf("Failed to close tar writer: %v", err)
	}
	if err := gzWriter.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}

	parent := t.TempDir()
	target := filepath.Join(parent, "restored")
	if err := ExtractArchive(buf.Bytes(), target); !errors.Is(err, verrors.ErrArchiveFailed) {
		t.Fatalf("Expected ErrArchiveFailed for traversal, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(parent, "escaped.txt")); !os.IsNotExist(err) {
		t.Error("Traversal member escaped the target directory")
	}
}

func TestExtractArchive_NotAnArchive(t *testing.T) {
	if err := ExtractArchive([]byte("garbage"), t.TempDir()); !errors.Is(err, verrors.ErrArchiveFailed) {
		t.Errorf("Expected ErrArchiveFailed, got: %v", err)
	}
}
