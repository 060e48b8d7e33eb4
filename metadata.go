// Copyright 2026 The CaRT Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cart

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Metadata is the JSON object carried in either the optional header or the
// optional footer: unique string keys, JSON-scalar or sub-object values,
// insertion order preserved across Insert calls the same way a hand-edited
// JSON document would be. The zero value is an empty object.
type Metadata struct {
	keys   []string
	values map[string]any
}

// NewMetadata returns an empty Metadata object.
func NewMetadata() *Metadata {
	return &Metadata{values: map[string]any{}}
}

// ParseMetadataJSON parses compact or pretty-printed JSON bytes as a
// Metadata object, preserving source key order. It is exported for callers
// (the CLI's sidecar and config-file handling, in particular) that need to
// turn caller-supplied JSON into a Metadata without losing that order the
// way an encoding/json map unmarshal would.
func ParseMetadataJSON(raw []byte) (*Metadata, error) {
	return parseMetadata(raw)
}

// parseMetadata parses compact JSON bytes as a Metadata object. An empty
// input, or the literal JSON null, is treated as an empty object, matching
// the producer-side convention that absent metadata round-trips as {}.
// Anything else that fails to decode as a JSON object is ErrCorruptMetadata
// -- by far the most common cause being an incorrect RC4 key turning the
// plaintext into noise.
func parseMetadata(raw []byte) (*Metadata, error) {
	m := NewMetadata()
	if len(raw) == 0 {
		return m, nil
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-object scalars land here; a null rejected by the decoder is
		// still accepted as an empty object.
		var probe any
		if jerr := json.Unmarshal(raw, &probe); jerr == nil && probe == nil {
			return m, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrCorruptMetadata, err)
	}
	// A JSON null decodes into a nil map without error.
	if decoded == nil {
		return m, nil
	}

	// encoding/json style unmarshaling into a map loses source order, so we
	// recover it with a light second pass over the raw object tokens.
	order, err := objectKeyOrder(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptMetadata, err)
	}

	for _, k := range order {
		raw, ok := decoded[k]
		if !ok {
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptMetadata, err)
		}
		m.Insert(k, v)
	}

	return m, nil
}

// Insert sets key to value, overwriting any existing value for key in
// place. A new key is appended to the end of the iteration order.
func (m *Metadata) Insert(key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// InsertString is a convenience wrapper for the common case of inserting a
// string-valued field, mirroring the way the footer's synthesized fields
// (length, md5, sha1, sha256) are always strings.
func (m *Metadata) InsertString(key, value string) {
	m.Insert(key, value)
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Get returns the value for key and whether it was present.
func (m *Metadata) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *Metadata) Delete(key string) {
	if !m.Has(key) {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the object's keys in insertion order.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len reports the number of keys.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Clone returns a shallow copy of m.
func (m *Metadata) Clone() *Metadata {
	c := NewMetadata()
	for _, k := range m.keys {
		c.Insert(k, m.values[k])
	}
	return c
}

// merge returns a new Metadata starting from m (the optional header),
// inserting each of other's entries (the optional footer) on top -- other
// wins on key collision, the header-union-footer rule MergeMetadata
// exposes.
func (m *Metadata) merge(other *Metadata) *Metadata {
	out := m.Clone()
	for _, k := range other.keys {
		out.Insert(k, other.values[k])
	}
	return out
}

// JSON serializes m to compact (no-whitespace) UTF-8 JSON, in insertion
// order. It is the exported form of dump, for callers (the CLI's sidecar
// writer, in particular) that need the wire form without going through a
// full header or footer pack.
func (m *Metadata) JSON() []byte {
	return m.dump()
}

// dump serializes m to compact (no-whitespace) UTF-8 JSON, in insertion
// order. An empty object serializes as the two bytes "{}".
func (m *Metadata) dump() []byte {
	if len(m.keys) == 0 {
		return []byte("{}")
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, _ := json.Marshal(k)
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			// Values originate from Insert/InsertString/parseMetadata,
			// all of which only ever hold JSON-marshalable data.
			vb = []byte("null")
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf
}

// objectKeyOrder walks a compact or pretty-printed JSON object's top-level
// keys in the order they appear in raw, without materializing a Go map.
func objectKeyOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		// A non-object scalar (e.g. "null") is handled by the caller
		// before objectKeyOrder is reached in the common path, but guard
		// here too for direct callers.
		return nil, fmt.Errorf("not a JSON object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("non-string object key")
		}
		keys = append(keys, key)

		// Skip the value: decode it into a throwaway json.RawMessage so
		// the decoder's cursor advances past nested objects/arrays.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
