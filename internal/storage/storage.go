// Package storage reads and writes bank documents on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/abhisek/kviz/internal/bank"
	"github.com/abhisek/kviz/internal/codec"
)

// StorageError reports a filesystem failure. It never wraps a
// *codec.FormatError; malformed content is reported by the codec.
type StorageError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsNotExist reports whether err is a StorageError for a missing file.
func IsNotExist(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr) && errors.Is(serr.Err, fs.ErrNotExist)
}

// ReadDocument reads and parses the document at path. The syntax is chosen
// from the file extension.
func ReadDocument(path string) (codec.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return codec.Unmarshal(codec.FormatFromPath(path), data)
}

// WriteDocument renders doc and replaces the file at path atomically.
func WriteDocument(path string, doc codec.Document) error {
	data, err := codec.Marshal(codec.FormatFromPath(path), doc)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// LoadBank replaces the contents of b with the bank stored at path.
// On any failure b is left untouched.
func LoadBank(path string, b *bank.Bank) error {
	doc, err := ReadDocument(path)
	if err != nil {
		return err
	}
	qs, err := codec.Decode(doc)
	if err != nil {
		return err
	}
	b.ReplaceAll(qs)
	return nil
}

// SaveBank writes every question in b to path.
func SaveBank(path string, b *bank.Bank) error {
	return WriteDocument(path, codec.Encode(b.List()))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}
