package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// accountsSchema is the structural contract for the persisted file: a JSON
// array of account objects. Checked before decoding so a corrupted or
// hand-edited file fails with a clear message instead of half-loading.
const accountsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "service_type", "description", "amount", "issue_date", "due_date", "paid"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "service_type": {"type": "string", "enum": ["electricity", "water", "gas", "internet", "shared_fees"]},
      "description": {"type": "string"},
      "notes": {"type": "string"},
      "amount": {"type": "integer"},
      "issue_date": {"type": "string"},
      "due_date": {"type": "string"},
      "next_reading_date": {"type": "string"},
      "cutoff_date": {"type": "string"},
      "paid": {"type": "boolean"},
      "paid_date": {"type": "string"},
      "history": {"type": "array"}
    }
  }
}`

var accountsSchemaLoader = gojsonschema.NewStringLoader(accountsSchema)

// FileStore persists the account list to a single JSON file. Writes are
// atomic: the new content goes to a temp file which then replaces the old
// one, so a crash mid-save cannot corrupt the data. A timestamped backup of
// the previous file is kept before each save, rotated to keepBackups copies.
type FileStore struct {
	path        string
	keepBackups int
}

func NewFileStore(path string, keepBackups int) *FileStore {
	return &FileStore{path: path, keepBackups: keepBackups}
}

// LoadAll reads the full account list. A missing file is an empty list, not
// an error.
func (s *FileStore) LoadAll(_ context.Context) ([]Account, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	if err := validateAccountsJSON(data); err != nil {
		return nil, fmt.Errorf("data file %s: %w", s.path, err)
	}

	var persisted []persistAccount
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}

	return fromPersistList(persisted)
}

// SaveAll writes the full account list, replacing the previous content.
func (s *FileStore) SaveAll(_ context.Context, accounts []Account) error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := s.backupExisting(); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toPersistList(accounts)); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// backupExisting copies the current data file aside and prunes old backups.
// Backup failures are not fatal to the save.
func (s *FileStore) backupExisting() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading data file for backup: %w", err)
	}

	backup := fmt.Sprintf("%s.bak-%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return fmt.Errorf("writing backup %s: %w", backup, err)
	}

	s.pruneBackups()
	return nil
}

func (s *FileStore) pruneBackups() {
	if s.keepBackups <= 0 {
		return
	}
	matches, err := filepath.Glob(s.path + ".bak-*")
	if err != nil || len(matches) <= s.keepBackups {
		return
	}
	// Timestamped suffixes sort chronologically
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-s.keepBackups] {
		os.Remove(old)
	}
}

func validateAccountsJSON(data []byte) error {
	result, err := gojsonschema.Validate(accountsSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating file structure: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var msgs []string
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return fmt.Errorf("invalid file structure: %s", strings.Join(msgs, "; "))
}
