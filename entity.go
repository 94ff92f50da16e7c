package sitedesk

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the subset of echo.Logger the store layer writes warnings to.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// ReadStatus classifies what was found under a collection key.
type ReadStatus int

const (
	Absent ReadStatus = iota
	Valid
	Corrupt
)

func (s ReadStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Valid:
		return "valid"
	case Corrupt:
		return "corrupt"
	}
	return fmt.Sprintf("ReadStatus(%d)", int(s))
}

// ReadResult is the outcome of loading a collection. Records is empty unless
// Status is Valid. For Corrupt results Raw and Err describe the bad text.
type ReadResult[T any] struct {
	Status  ReadStatus
	Records []T
	Raw     string
	Err     error
}

// Collection is a named JSON array of T in the store.
type Collection[T any] struct {
	store *Store
	key   string
	log   Logger
}

// NewCollection binds key in s to records of type T. A nil logger falls back
// to a gommon logger.
func NewCollection[T any](s *Store, key string, logger Logger) *Collection[T] {
	if logger == nil {
		logger = log.New("sitedesk")
	}
	return &Collection[T]{store: s, key: key, log: logger}
}

// Key returns the store key this collection reads and writes.
func (c *Collection[T]) Key() string { return c.key }

// Load reads and decodes the collection, distinguishing absent, valid and
// corrupt text. The error is reserved for storage failures.
func (c *Collection[T]) Load() (ReadResult[T], error) {
	raw, ok, err := c.store.Read(c.key)
	if err != nil {
		return ReadResult[T]{}, err
	}
	return decodeCollection[T](raw, ok), nil
}

func decodeCollection[T any](raw string, ok bool) ReadResult[T] {
	if !ok {
		return ReadResult[T]{Status: Absent, Records: []T{}}
	}
	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return ReadResult[T]{Status: Corrupt, Records: []T{}, Raw: raw, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return ReadResult[T]{Status: Valid, Records: records, Raw: raw}
}

// Get returns the records in insertion order. Corrupt text degrades to an
// empty slice and a logged warning.
func (c *Collection[T]) Get() ([]T, error) {
	res, err := c.Load()
	if err != nil {
		return nil, err
	}
	if res.Status == Corrupt {
		c.log.Warnf("collection %s is corrupt, reading as empty: %v", c.key, res.Err)
	}
	return res.Records, nil
}

// Append pushes rec to the end of the collection.
func (c *Collection[T]) Append(rec T) error {
	return c.rewrite(func(records []T) ([]T, error) {
		return append(records, rec), nil
	})
}

// ReplaceAll overwrites the collection with records.
func (c *Collection[T]) ReplaceAll(records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Write(c.key, string(b))
}

// Remove rewrites the collection without the records matching pred and
// reports how many were dropped. Survivors keep their relative order.
func (c *Collection[T]) Remove(pred func(T) bool) (int, error) {
	removed := 0
	err := c.rewrite(func(records []T) ([]T, error) {
		kept := make([]T, 0, len(records))
		for _, r := range records {
			if pred(r) {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// BackupSuffix is appended to a collection key to name the copy of its
// corrupt text saved by a rewrite.
const BackupSuffix = ".corrupt"

// Backups lists the saved corrupt copies of collections under prefix.
func Backups(s *Store, prefix string) ([]string, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) && strings.HasSuffix(k, BackupSuffix) {
			out = append(out, k)
		}
	}
	return out, nil
}

// DiscardBackup deletes a copy listed by Backups. Any other key is refused
// with ErrNotFound.
func DiscardBackup(s *Store, prefix, key string) error {
	backups, err := Backups(s, prefix)
	if err != nil {
		return err
	}
	if !slices.Contains(backups, key) {
		return fmt.Errorf("backup %s: %w", key, ErrNotFound)
	}
	return s.Delete(key)
}

// rewrite performs a read-modify-write of the collection in one transaction.
// Corrupt text is copied to "<key>.corrupt" before it is overwritten.
func (c *Collection[T]) rewrite(fn func([]T) ([]T, error)) error {
	return c.store.modify(func(t txn) error {
		raw, ok, err := t.read(c.key)
		if err != nil {
			return err
		}
		res := decodeCollection[T](raw, ok)
		if res.Status == Corrupt {
			c.log.Warnf("collection %s is corrupt, preserving it as %s%s: %v", c.key, c.key, BackupSuffix, res.Err)
			if err := t.write(c.key+BackupSuffix, res.Raw); err != nil {
				return err
			}
		}
		next, err := fn(res.Records)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}
		return t.write(c.key, string(b))
	})
}

// TextValue is a single JSON string stored under a key, used for page copy.
type TextValue struct {
	store *Store
	key   string
}

// Get returns the stored text, or "" when absent or not a JSON string.
func (v TextValue) Get() (string, error) {
	raw, ok, err := v.store.Read(v.key)
	if err != nil || !ok {
		return "", err
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return "", nil
	}
	return s, nil
}

// Set stores text under the key.
func (v TextValue) Set(text string) error {
	b, err := json.Marshal(text)
	if err != nil {
		return err
	}
	return v.store.Write(v.key, string(b))
}
