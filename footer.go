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

import "fmt"

// footer is the parsed form of the mandatory footer plus its decrypted
// optional footer.
type footer struct {
	optFooterPos int64
	meta         *Metadata
}

// packFooter serializes the RC4-encrypted optional footer followed by the
// mandatory footer for key, meta, and the absolute optFooterPos where this
// footer begins in the finished envelope.
//
// meta may be nil, in which case the optional footer region is zero bytes
// long (F=0).
func packFooter(key [keySize]byte, meta *Metadata, optFooterPos int64) []byte {
	var raw []byte
	if meta != nil {
		raw = meta.dump()
	}

	var w frameWriter
	w.writeRaw(processRegion(key, raw))
	w.writeRaw([]byte(tracMagic))
	w.writeU64LE(0) // reserved
	w.writeUsizeLE(optFooterPos)
	w.writeUsizeLE(int64(len(raw)))

	return w.bytes()
}

// unpackFooter reads the mandatory footer from the end of r, then seeks to
// the recorded optional-footer position and decrypts it with key.
//
// Unlike the reference implementation, which reads the footer magic but
// never rejects a mismatch, this package treats a mismatched "TRAC" magic
// as ErrCorruptFraming: a mismatch here almost always means the stream was
// truncated or never a CaRT file, and the mandatory-footer search (seek to
// end-28) has no other integrity check to fall back on. This is a
// deliberate, spec-flagged tightening of the original's behavior.
func unpackFooter(r *frameReader, key [keySize]byte, fileSize int64) (*footer, error) {
	if err := r.seekFromEnd(-mandatoryFooterSize); err != nil {
		return nil, err
	}

	magic, err := r.readExact(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != tracMagic {
		return nil, fmt.Errorf("%w: bad footer magic %q", ErrCorruptFraming, magic)
	}

	if _, err := r.readExact(8); err != nil { // reserved
		return nil, err
	}

	optFooterPos, err := r.readUsizeLE()
	if err != nil {
		return nil, err
	}
	if optFooterPos < 0 || optFooterPos > fileSize-mandatoryFooterSize {
		return nil, fmt.Errorf("%w: optional-footer position %d out of range", ErrCorruptFraming, optFooterPos)
	}

	fLen, err := r.readUsizeLE()
	if err != nil {
		return nil, err
	}
	if fLen < 0 {
		return nil, fmt.Errorf("%w: negative optional footer length", ErrCorruptFraming)
	}

	if err := r.seekFromStart(optFooterPos); err != nil {
		return nil, err
	}
	cipherText, err := r.readExact(int(fLen))
	if err != nil {
		return nil, err
	}

	meta, err := parseMetadata(processRegion(key, cipherText))
	if err != nil {
		return nil, err
	}

	return &footer{optFooterPos: optFooterPos, meta: meta}, nil
}
