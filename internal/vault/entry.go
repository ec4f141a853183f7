package vault

import "time"

// Method tags the algorithm used for an entry. Decryption dispatches on
// this tag, which lets new algorithms coexist with legacy entries in the
// same document.
type Method string

const (
	// MethodAES256GCM is the default for new entries: AES-256-GCM, which
	// adds integrity protection on top of confidentiality.
	MethodAES256GCM Method = "YubiKey_AES256_GCM"

	// MethodAES256CBC is the legacy format: AES-256-CBC with PKCS#7
	// padding and no authentication tag. Still decryptable; new entries
	// only use it when explicitly requested for interoperability.
	MethodAES256CBC Method = "YubiKey_AES256_CBC"
)

// DataTypeFolderArchive marks an entry whose plaintext is a tar.gz archive
// of a directory tree rather than a short secret.
const DataTypeFolderArchive = "folder_archive"

// Entry is one named, independently keyed ciphertext record. All binary
// fields are base64 in the persisted form.
type Entry struct {
	EncryptedData    string    `json:"encrypted_data"`
	Salt             string    `json:"salt"`
	IV               string    `json:"iv"`
	CreatedAt        time.Time `json:"created_at"`
	Description      string    `json:"description"`
	EncryptionMethod Method    `json:"encryption_method"`

	// Directory archive entries only.
	OriginalPath string `json:"original_path,omitempty"`
	FolderName   string `json:"folder_name,omitempty"`
	DataType     string `json:"data_type,omitempty"`
}

// IsFolderArchive reports whether the entry stores an archived directory.
func (e Entry) IsFolderArchive() bool {
	return e.DataType == DataTypeFolderArchive
}

// Document maps a service name to its encrypted entry. Service names are
// case-sensitive and unique; writing under an existing name replaces the
// old entry (upsert semantics).
type Document map[string]Entry
