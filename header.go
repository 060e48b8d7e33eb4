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
)

// header is the parsed form of the mandatory header plus its decrypted
// optional header.
type header struct {
	version int16
	key     [keySize]byte
	meta    *Metadata
}

// packHeader serializes the mandatory header and RC4-encrypted optional
// header for key and meta.
//
// meta may be nil, in which case the optional header region is zero bytes
// long (H=0); an explicit, key-less Metadata still serializes as the
// two-byte "{}".
//
// If key equals DefaultKey, it is embedded in the key slot verbatim.
// Otherwise the key slot is written as sixteen zero bytes -- the sentinel
// telling a reader "the real key travels out-of-band." This is the inverse
// of what might be expected (the key that needs no out-of-band channel is
// the one written out), but it is required for on-disk compatibility with
// existing CaRT readers.
func packHeader(key [keySize]byte, meta *Metadata, version int16) []byte {
	var raw []byte
	if meta != nil {
		raw = meta.dump()
	}

	var w frameWriter
	w.writeRaw([]byte(cartMagic))
	w.writeI16LE(version)
	w.writeU64LE(0) // reserved
	if key == DefaultKey {
		w.writeRaw(key[:])
	} else {
		w.writeRaw(zeroKey[:])
	}
	w.writeUsizeLE(int64(len(raw)))
	w.writeRaw(processRegion(key, raw))

	return w.bytes()
}

// unpackHeader reads the mandatory header and its optional header from r,
// resolving the working RC4 key.
//
// keyOverride is the caller-supplied key, if any. When the header's key
// slot is the zero sentinel, the resolved key is keyOverride if present,
// else DefaultKey -- the CLI layer's own config-file fallback happens
// before keyOverride ever reaches this package; the core never reads
// configuration.
func unpackHeader(r *frameReader, keyOverride []byte) (*header, int64, error) {
	magic, err := r.readExact(4)
	if err != nil {
		return nil, 0, err
	}
	if string(magic) != cartMagic {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}

	version, err := r.readI16LE()
	if err != nil {
		return nil, 0, err
	}
	if version != DefaultVersion {
		return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	if _, err := r.readExact(8); err != nil { // reserved
		return nil, 0, err
	}

	keySlot, err := r.readExact(keySize)
	if err != nil {
		return nil, 0, err
	}
	var key [keySize]byte
	if bytes.Equal(keySlot, zeroKey[:]) {
		if keyOverride != nil {
			key = normalizeKey(keyOverride)
		} else {
			key = DefaultKey
		}
	} else {
		copy(key[:], keySlot)
	}

	hLen, err := r.readUsizeLE()
	if err != nil {
		return nil, 0, err
	}
	if hLen < 0 {
		return nil, 0, fmt.Errorf("%w: negative optional header length", ErrCorruptFraming)
	}

	cipherText, err := r.readExact(int(hLen))
	if err != nil {
		return nil, 0, err
	}

	meta, err := parseMetadata(processRegion(key, cipherText))
	if err != nil {
		return nil, 0, err
	}

	return &header{version: version, key: key, meta: meta}, hLen, nil
}
