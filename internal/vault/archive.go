package vault

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// ArchiveDirectory builds a gzip-compressed tar archive of the full
// directory tree rooted at root, entirely in memory. Header names are
// relative to root with forward slashes, so extraction can re-materialize
// the tree at any target path.
func ArchiveDirectory(root string) ([]byte, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", verrors.ErrDirectoryNotFound, root)
		}
		return nil, fmt.Errorf("%w: %v", verrors.ErrArchiveFailed, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", verrors.ErrArchiveFailed, root)
	}

	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzWriter)

	walkErr := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		// Symlinks and other special files are not round-trippable through
		// the vault; skip them rather than archive a broken tree.
		if !info.Mode().IsRegular() && !info.IsDir() {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(tarWriter, file)
		return err
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrArchiveFailed, walkErr)
	}

	if err := tarWriter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrArchiveFailed, err)
	}
	if err := gzWriter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrArchiveFailed, err)
	}

	return buf.Bytes(), nil
}

// ExtractArchive re-materializes an archive produced by ArchiveDirectory
// under target, creating the directory tree as needed.
func ExtractArchive(data []byte, target string) error {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrArchiveFailed, err)
	}
	defer gzReader.Close()

	// #nosec G301 -- Directories need to be accessible.
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("%w: creating target directory: %v", verrors.ErrArchiveFailed, err)
	}

	tarReader := tar.NewReader(gzReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading tar header: %v", verrors.ErrArchiveFailed, err)
		}

		// Validate path to prevent directory traversal attacks.
		// #nosec G305 -- We validate the path below before using it.
		targetPath := filepath.Join(target, header.Name)
		if !strings.HasPrefix(filepath.Clean(targetPath), filepath.Clean(target)+string(os.PathSeparator)) &&
			filepath.Clean(targetPath) != filepath.Clean(target) {
			return fmt.Errorf("%w: invalid path in archive (path traversal attempt): %s", verrors.ErrArchiveFailed, header.Name)
		}

		if header.Typeflag == tar.TypeDir {
			// #nosec G301 -- Directories need to be accessible.
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("%w: creating directory %s: %v", verrors.ErrArchiveFailed, header.Name, err)
			}
			continue
		}

		// Create parent directories for files whose directory headers were
		// skipped by the archiver.
		// #nosec G301 -- Directories need to be accessible.
		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("%w: creating directory for %s: %v", verrors.ErrArchiveFailed, header.Name, err)
		}

		if err := extractFile(tarReader, targetPath, header.Mode); err != nil {
			return fmt.Errorf("%w: extracting %s: %v", verrors.ErrArchiveFailed, header.Name, err)
		}
	}

	return nil
}

// extractFile extracts a single file from the tar reader to the target path.
func extractFile(tr *tar.Reader, targetPath string, mode int64) error {
	// Convert mode safely, defaulting to 0600 for invalid values.
	fileMode := os.FileMode(0600)
	if mode >= 0 && mode <= 0777 {
		fileMode = os.FileMode(mode) // #nosec G115 -- We validate mode is in valid range.
	}

	outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer outFile.Close()

	// #nosec G110 -- The archive was produced by this vault and decrypted
	// under an authenticated cipher before reaching extraction.
	if _, err := io.Copy(outFile, tr); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}

	return nil
}
