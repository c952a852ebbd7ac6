// Package store implements the file-backed persistence core: a generic JSON
// document container with atomic writes, the tag rules for business-data
// partitions, and the Manager that owns the live store instances.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planfold/planfold/internal/common"
)

// File is a JSON-document-backed container. The whole document is kept in
// memory; Write persists it wholesale with a temp-file-then-rename sequence,
// so the on-disk content is always either the fully-previous or fully-new
// document.
//
// File is not internally synchronized. The owning Manager serializes access;
// at most one Write per File may be in flight at a time.
type File[T any] struct {
	path string
	doc  *T
}

// Open loads the document at path. If the file does not exist, parent
// directories are created as needed and the initial document is written.
// The normalize hook runs after every load so collections missing from older
// documents are healed instead of failing the load; it may be nil.
func Open[T any](path string, initial func() *T, normalize func(*T)) (*File[T], error) {
	f := &File[T]{path: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(data) == 0 {
			f.doc = initial()
			break
		}
		doc := new(T)
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", common.ErrStoreFormat, filepath.Base(path), err)
		}
		f.doc = doc
	case errors.Is(err, os.ErrNotExist):
		f.doc = initial()
		if normalize != nil {
			normalize(f.doc)
		}
		if err := f.Write(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStoreIO, filepath.Base(path), err)
	}

	if normalize != nil {
		normalize(f.doc)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File[T]) Path() string {
	return f.path
}

// Data returns the mutable in-memory document. Callers mutate it directly
// and then call Write to persist.
func (f *File[T]) Data() *T {
	return f.doc
}

// Write serializes the in-memory document and persists it atomically. On
// failure the prior on-disk content is left untouched.
func (f *File[T]) Write() error {
	data, err := json.MarshalIndent(f.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", common.ErrStoreIO, filepath.Base(f.path), err)
	}
	data = append(data, '\n')
	return writeFileAtomic(f.path, data)
}

func jsonMarshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %v", common.ErrStoreIO, err)
	}
	return append(data, '\n'), nil
}

// writeFileAtomic writes data to a temporary sibling file and renames it
// over path. The rename is the commit point; its atomicity is the sole
// durability guarantee offered.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: create directory for %s: %v", common.ErrStoreIO, filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: write temp file for %s: %v", common.ErrStoreIO, filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %v", common.ErrStoreIO, filepath.Base(path), err)
	}
	return nil
}
