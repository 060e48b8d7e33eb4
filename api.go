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
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Pack reads the entirety of r, compresses and RC4-encrypts it, and writes a
// complete CaRT stream to w. headerMeta and footerMeta may be nil for no
// optional metadata in that region. key may be nil to use DefaultKey.
//
// Pack packs exactly what the caller supplied; it never synthesizes
// length/md5/sha1/sha256 footer fields itself. Use PackFile, or replicate
// its hashing, when those fields are required.
func Pack(r io.Reader, w io.Writer, headerMeta, footerMeta *Metadata, key []byte) error {
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: reading payload: %w", errCart, err)
	}

	resolvedKey := DefaultKey
	if key != nil {
		resolvedKey = normalizeKey(key)
	}

	out, err := packEnvelope(plaintext, headerMeta, footerMeta, resolvedKey)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: writing envelope: %w", errCart, err)
	}
	return nil
}

// Unpack parses a complete CaRT stream from r, decrypts and inflates its
// body, and writes the recovered plaintext to w. It returns the header and
// footer metadata objects as parsed (unmerged). keyOverride may be nil to
// fall back to the header's embedded key, or DefaultKey if the header
// carries the zero-key sentinel.
func Unpack(r io.ReadSeeker, w io.Writer, keyOverride []byte) (headerMeta, footerMeta *Metadata, err error) {
	plaintext, headerMeta, footerMeta, err := unpackEnvelope(r, keyOverride)
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, nil, fmt.Errorf("%w: writing payload: %w", errCart, err)
	}
	return headerMeta, footerMeta, nil
}

// Examine parses a complete CaRT stream's framing and returns its header and
// footer metadata without decrypting or inflating the body. It is the cheap
// path for callers that only want to inspect metadata (e.g. a CLI's
// `inspect` command).
func Examine(r io.ReadSeeker, keyOverride []byte) (headerMeta, footerMeta *Metadata, err error) {
	return examineEnvelope(r, keyOverride)
}

// MergeMetadata returns the union of headerMeta and footerMeta, footer
// entries winning on key collision, matching the envelope's own public
// metadata() contract.
func MergeMetadata(headerMeta, footerMeta *Metadata) *Metadata {
	return mergedMetadata(headerMeta, footerMeta)
}

// PackFile reads the file at srcPath, computes its length and MD5/SHA-1/
// SHA-256 digests, merges those into footerMeta (always taking precedence
// over any caller-supplied values of the same key, matching the reference
// implementation's contract that these four fields are footer-owned), and
// writes a complete CaRT stream to dstPath. If headerMeta does not already
// carry a "name" entry, it is set to srcPath's base name.
func PackFile(srcPath, dstPath string, headerMeta, footerMeta *Metadata, key []byte) error {
	plaintext, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", errCart, srcPath, err)
	}

	hm := headerMeta
	if hm == nil {
		hm = NewMetadata()
	} else {
		hm = hm.Clone()
	}
	if !hm.Has("name") {
		hm.InsertString("name", filepath.Base(srcPath))
	}

	fm := footerMeta
	if fm == nil {
		fm = NewMetadata()
	} else {
		fm = fm.Clone()
	}
	for _, field := range hashFields(plaintext) {
		fm.InsertString(field.key, field.value)
	}

	resolvedKey := DefaultKey
	if key != nil {
		resolvedKey = normalizeKey(key)
	}

	out, err := packEnvelope(plaintext, hm, fm, resolvedKey)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, out, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %w", errCart, dstPath, err)
	}
	return nil
}

// UnpackFile parses the CaRT stream at srcPath and writes the recovered
// plaintext to dstPath.
func UnpackFile(srcPath, dstPath string, keyOverride []byte) (headerMeta, footerMeta *Metadata, err error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %w", errCart, srcPath, err)
	}
	defer f.Close()

	plaintext, headerMeta, footerMeta, err := unpackEnvelope(f, keyOverride)
	if err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(dstPath, plaintext, 0o644); err != nil {
		return nil, nil, fmt.Errorf("%w: writing %s: %w", errCart, dstPath, err)
	}
	return headerMeta, footerMeta, nil
}

// ExamineFile parses the CaRT stream at path and returns its metadata
// without writing a recovered payload anywhere.
func ExamineFile(path string, keyOverride []byte) (headerMeta, footerMeta *Metadata, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %w", errCart, path, err)
	}
	defer f.Close()
	return examineEnvelope(f, keyOverride)
}

// IsCartFile reports whether the file at path begins with a CaRT mandatory
// header this package can read. Like IsCart, it swallows errors into false.
func IsCartFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return IsCart(f)
}

// hashField is one synthesized footer key/value pair.
type hashField struct {
	key   string
	value string
}

// hashFields computes the footer's four synthesized fields over plaintext,
// in a fixed order, so PackFile's footer JSON has a deterministic key order
// across runs.
func hashFields(plaintext []byte) [4]hashField {
	md5Sum := md5.Sum(plaintext)
	sha1Sum := sha1.Sum(plaintext)
	sha256Sum := sha256.Sum256(plaintext)
	return [4]hashField{
		{"length", strconv.Itoa(len(plaintext))},
		{"md5", hex.EncodeToString(md5Sum[:])},
		{"sha1", hex.EncodeToString(sha1Sum[:])},
		{"sha256", hex.EncodeToString(sha256Sum[:])},
	}
}
