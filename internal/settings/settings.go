// Package settings reads and mutates the enabledPlugins map inside the
// settings document. The document carries unrelated fields owned by other
// tools; those are preserved untouched on write.
package settings

import (
	"encoding/json"
	"errors"

	"plugdeck/internal/store"
)

const enabledKey = "enabledPlugins"

// Document is a loaded settings document. Unrelated keys are kept as raw
// JSON so a save round-trips them byte-for-byte.
type Document struct {
	path   string
	fields map[string]json.RawMessage
}

// Load reads the settings document at path. A missing file yields an empty
// document; a malformed file surfaces as *store.MalformedDocumentError.
func Load(path string) (*Document, error) {
	fields, err := store.ReadDocument[map[string]json.RawMessage](path)
	if err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return &Document{path: path, fields: map[string]json.RawMessage{}}, nil
		}
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return &Document{path: path, fields: fields}, nil
}

// Enabled returns the plugin id -> enabled map. Ids absent from the map are
// disabled; a malformed enabledPlugins value is treated the same as an
// absent one since the rest of the document parsed.
func (d *Document) Enabled() map[string]bool {
	raw, ok := d.fields[enabledKey]
	if !ok {
		return map[string]bool{}
	}
	var m map[string]bool
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return map[string]bool{}
	}
	return m
}

// IsEnabled reports whether id is explicitly enabled.
func (d *Document) IsEnabled(id string) bool {
	return d.Enabled()[id]
}

// SetEnabled sets the enabled flag for id and saves the document. The write
// completes before the call returns; on failure the on-disk document is
// unchanged and callers must not patch their in-memory state.
func (d *Document) SetEnabled(id string, enabled bool) error {
	m := d.Enabled()
	m[id] = enabled

	raw, err := json.Marshal(m)
	if err != nil {
		return &store.WriteFailedError{Path: d.path, Err: err}
	}
	updated := make(map[string]json.RawMessage, len(d.fields)+1)
	for k, v := range d.fields {
		updated[k] = v
	}
	updated[enabledKey] = raw

	if err := store.WriteDocument(d.path, updated); err != nil {
		return err
	}
	d.fields = updated
	return nil
}

// Toggle flips the enabled flag for id, saves, and returns the new value.
func (d *Document) Toggle(id string) (bool, error) {
	next := !d.IsEnabled(id)
	if err := d.SetEnabled(id, next); err != nil {
		return !next, err
	}
	return next, nil
}
