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
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
)

// compress zlib-wraps (DEFLATE + zlib header/Adler-32 trailer) a plaintext
// payload.
//
// The encoder runs at flate.HuffmanOnly, which disables LZ77 match search.
// It does not force fixed-Huffman (block type 1) blocks: Go's compress/flate
// has no public knob for that, and in this mode it writes a stored block
// when Huffman coding would save little (small payloads) and a
// dynamic-Huffman block otherwise. Only the empty final block written for
// an empty payload uses the fixed table. The output is an ordinary zlib
// stream that decompress, or any other inflater, reads. We use it for the
// same reason our teacher package re-exports the constant on its own
// Writer: it is the documented, tested lever the standard library gives
// callers who want the LZ77-free, Huffman-only path.
func compress(plaintext []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, flate.HuffmanOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib writer: %w", errCart, err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("%w: compressing: %w", errCart, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: compressing: %w", errCart, err)
	}

	return buf.Bytes(), nil
}

// decompress accepts any valid zlib stream, fixed or dynamic Huffman, and
// returns the inflated plaintext.
func decompress(compressed []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBody, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBody, err)
	}
	return out, nil
}
