package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	verrors "github.com/yubivault/yubivault/internal/errors"
)

// Store owns the vault document on disk. Every operation is a full
// load -> mutate -> save cycle; there is no internal locking, so two
// concurrent invocations against the same file are last-writer-wins.
// The atomic save prevents torn documents but not lost updates.
type Store struct {
	// Path is the JSON document holding all entries.
	Path string
}

// NewStore returns a store for the given document path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Exists reports whether the document file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the full document. A missing file is an empty document, not
// an error: the first encrypt creates it.
//
// Returns ErrStoreCorrupt when the file exists but is not valid JSON.
func (s *Store) Load() (Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("failed to read vault document at %s: %w", s.Path, err)
	}

	doc := Document{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", verrors.ErrStoreCorrupt, err)
	}

	return doc, nil
}

// Save writes the full document atomically: marshal to a unique temp file
// in the same directory, then rename over the real path. A crash mid-write
// never leaves a partially written document behind.
func (s *Store) Save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal vault document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create vault directory at %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.Path), uuid.New().String()))
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault document: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path); err != nil {
		// Best effort: don't leave the temp file behind on failure.
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace vault document: %w", err)
	}

	return nil
}

// Get returns the entry for a service.
//
// Returns ErrEntryNotFound if the service was never enrolled. Callers use
// this to avoid prompting for a passcode for a service that does not exist.
func (s *Store) Get(service string) (Entry, error) {
	doc, err := s.Load()
	if err != nil {
		return Entry{}, err
	}

	entry, ok := doc[service]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", verrors.ErrEntryNotFound, service)
	}
	return entry, nil
}

// Put upserts the entry under the service name, leaving every other entry
// untouched, and saves the document.
func (s *Store) Put(service string, entry Entry) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}

	doc[service] = entry
	return s.Save(doc)
}

// Delete removes the entry for a service and saves the document.
//
// Returns ErrEntryNotFound if the service is absent.
func (s *Store) Delete(service string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}

	if _, ok := doc[service]; !ok {
		return fmt.Errorf("%w: %s", verrors.ErrEntryNotFound, service)
	}

	delete(doc, service)
	return s.Save(doc)
}
