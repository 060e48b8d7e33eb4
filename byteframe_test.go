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
	"errors"
	"testing"
)

func TestFrameWriterPrimitives(t *testing.T) {
	t.Parallel()

	var w frameWriter
	w.writeRaw([]byte("CART"))
	w.writeI16LE(1)
	w.writeU64LE(0)
	w.writeU16LE(0x0102)
	w.writeUsizeLE(300)

	want := []byte{
		'C', 'A', 'R', 'T',
		0x01, 0x00,
		0, 0, 0, 0, 0, 0, 0, 0,
		0x02, 0x01,
		0x2c, 0x01, 0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(w.bytes(), want) {
		t.Errorf("frameWriter.bytes() = % x, want % x", w.bytes(), want)
	}
}

func TestFrameReaderRoundTrip(t *testing.T) {
	t.Parallel()

	var w frameWriter
	w.writeI16LE(-7)
	w.writeU64LE(0xdeadbeef)
	w.writeRaw([]byte("payload"))

	r := newFrameReader(bytes.NewReader(w.bytes()))

	i16, err := r.readI16LE()
	if err != nil {
		t.Fatalf("readI16LE() error = %v", err)
	}
	if i16 != -7 {
		t.Errorf("readI16LE() = %d, want -7", i16)
	}

	u64, err := r.readU64LE()
	if err != nil {
		t.Fatalf("readU64LE() error = %v", err)
	}
	if u64 != 0xdeadbeef {
		t.Errorf("readU64LE() = %#x, want 0xdeadbeef", u64)
	}

	payload, err := r.readExact(len("payload"))
	if err != nil {
		t.Fatalf("readExact() error = %v", err)
	}
	if string(payload) != "payload" {
		t.Errorf("readExact() = %q, want %q", payload, "payload")
	}
}

func TestFrameReaderTruncated(t *testing.T) {
	t.Parallel()

	r := newFrameReader(bytes.NewReader([]byte{0x01, 0x02}))
	_, err := r.readU64LE()
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("readU64LE() error = %v, want ErrTruncatedInput", err)
	}
}

func TestFrameReaderSeekFromEnd(t *testing.T) {
	t.Parallel()

	r := newFrameReader(bytes.NewReader([]byte("0123456789")))
	if err := r.seekFromEnd(-4); err != nil {
		t.Fatalf("seekFromEnd() error = %v", err)
	}
	got, err := r.readExact(4)
	if err != nil {
		t.Fatalf("readExact() error = %v", err)
	}
	if string(got) != "6789" {
		t.Errorf("readExact() after seekFromEnd(-4) = %q, want %q", got, "6789")
	}
}
