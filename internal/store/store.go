// Package store provides safe read/write access to the JSON documents that
// hold plugin ecosystem state. Writes are atomic with respect to concurrent
// readers: a reader sees either the old document or the new one, never a
// partial write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotExist is returned by ReadDocument when the file does not exist.
// Callers that treat a missing document as an empty one match against this.
var ErrNotExist = errors.New("document does not exist")

// MalformedDocumentError indicates a document exists but could not be parsed.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// WriteFailedError indicates a durable write could not complete. The previous
// document at the target path is left intact.
type WriteFailedError struct {
	Path string
	Err  error
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("write failed %s: %v", e.Path, e.Err)
}

func (e *WriteFailedError) Unwrap() error {
	return e.Err
}

// ReadDocument reads and unmarshals a JSON document. A missing file is
// reported as ErrNotExist; an unparsable file as *MalformedDocumentError.
func ReadDocument[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return v, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, &MalformedDocumentError{Path: path, Err: err}
	}
	return v, nil
}

// WriteDocument marshals v and atomically replaces the document at path.
// The value is written to a temporary sibling first and renamed into place,
// so no partial document is ever observable at the final path. On failure
// the temporary file is removed and a *WriteFailedError is returned.
func WriteDocument[T any](path string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &WriteFailedError{Path: path, Err: err}
	}
	return writeAtomic(path, append(data, '\n'))
}

// WriteRaw atomically replaces the document at path with raw bytes that are
// already in serialized form.
func WriteRaw(path string, data []byte) error {
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteFailedError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &WriteFailedError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteFailedError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteFailedError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &WriteFailedError{Path: path, Err: err}
	}
	return nil
}

// PathExists reports whether path exists. Any stat failure counts as absent;
// this is only used for optional discovery, never for correctness.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory reports whether path exists and is a directory.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ListSubdirectories returns the sorted names of the immediate
// subdirectories of dir. Every failure degrades to an empty list.
func ListSubdirectories(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
