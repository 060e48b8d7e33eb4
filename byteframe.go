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
	"encoding/binary"
	"fmt"
	"io"
)

// frameReader reads little-endian fixed-width integers and raw byte runs
// from a seekable source, the way the CaRT envelope's fixed-offset fields
// are framed on disk. Every read that comes up short is reported as
// ErrTruncatedInput, wrapping the underlying io.EOF/io.ErrUnexpectedEOF,
// since a short read here always means a malformed or truncated envelope.
type frameReader struct {
	r io.ReadSeeker
}

func newFrameReader(r io.ReadSeeker) *frameReader {
	return &frameReader{r: r}
}

// readExact reads exactly n bytes or returns ErrTruncatedInput.
func (f *frameReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(f.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedInput, err)
	}
	return buf, nil
}

// seekFromStart seeks to an absolute offset from the beginning of the
// source.
func (f *frameReader) seekFromStart(off int64) error {
	if _, err := f.r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek from start: %w", errCart, err)
	}
	return nil
}

// seekFromEnd seeks relative to the end of the source. off is typically
// negative, e.g. -28 to land on the start of the mandatory footer.
func (f *frameReader) seekFromEnd(off int64) error {
	if _, err := f.r.Seek(off, io.SeekEnd); err != nil {
		return fmt.Errorf("%w: seek from end: %w", errCart, err)
	}
	return nil
}

func (f *frameReader) readU16LE() (uint16, error) {
	b, err := f.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (f *frameReader) readI16LE() (int16, error) {
	u, err := f.readU16LE()
	if err != nil {
		return 0, err
	}
	return int16(u), nil
}

func (f *frameReader) readU64LE() (uint64, error) {
	b, err := f.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readUsizeLE reads a u64-LE field and converts it to an int64, the way
// lengths and offsets are consumed everywhere else in this package. Values
// above math.MaxInt64 come out negative.
func (f *frameReader) readUsizeLE() (int64, error) {
	u, err := f.readU64LE()
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

// frameWriter appends little-endian fixed-width integers and raw byte runs
// to an in-memory buffer. Unlike frameReader it never fails: building an
// envelope is pure, in-memory byte assembly.
type frameWriter struct {
	buf []byte
}

func (f *frameWriter) writeRaw(b []byte) {
	f.buf = append(f.buf, b...)
}

func (f *frameWriter) writeU16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	f.buf = append(f.buf, b[:]...)
}

func (f *frameWriter) writeI16LE(v int16) {
	f.writeU16LE(uint16(v))
}

func (f *frameWriter) writeU64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	f.buf = append(f.buf, b[:]...)
}

// writeUsizeLE writes an int narrowed from a length or offset as a u64-LE
// field.
func (f *frameWriter) writeUsizeLE(v int64) {
	f.writeU64LE(uint64(v))
}

func (f *frameWriter) bytes() []byte {
	return f.buf
}
