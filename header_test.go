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

func TestPackHeaderEmptyDefaultKey(t *testing.T) {
	t.Parallel()

	got := packHeader(DefaultKey, nil, DefaultVersion)
	want := []byte{
		0x43, 0x41, 0x52, 0x54, // "CART"
		0x01, 0x00, // version 1
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // reserved
		0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
		0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06, // default key
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // H=0
	}

	if !bytes.Equal(got, want) {
		t.Errorf("packHeader() = % x, want % x", got, want)
	}
	if len(got) != mandatoryHeaderSize {
		t.Errorf("len(packHeader()) = %d, want %d", len(got), mandatoryHeaderSize)
	}
}

func TestPackHeaderWithOptionalHeader(t *testing.T) {
	t.Parallel()

	meta := NewMetadata()
	meta.InsertString("name", "test.txt")

	got := packHeader(DefaultKey, meta, DefaultVersion)

	wantPrefix := []byte{
		0x43, 0x41, 0x52, 0x54,
		0x01, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
		0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
		0x13, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // H=0x13=19
	}
	wantCipher := []byte{
		0xc2, 0xa4, 0xa5, 0x5c, 0x53, 0xd5, 0x43, 0xf7, 0x79, 0x61,
		0x33, 0xd7, 0x75, 0x1d, 0x94, 0xdd, 0xcb, 0xc4, 0xd4,
	}

	if len(got) != mandatoryHeaderSize+len(wantCipher) {
		t.Fatalf("len(packHeader()) = %d, want %d", len(got), mandatoryHeaderSize+len(wantCipher))
	}
	if !bytes.Equal(got[:mandatoryHeaderSize], wantPrefix) {
		t.Errorf("mandatory prefix = % x, want % x", got[:mandatoryHeaderSize], wantPrefix)
	}
	if !bytes.Equal(got[mandatoryHeaderSize:], wantCipher) {
		t.Errorf("optional header ciphertext = % x, want % x", got[mandatoryHeaderSize:], wantCipher)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		key  [keySize]byte
		meta *Metadata
	}{
		{
			name: "default key, no metadata",
			key:  DefaultKey,
			meta: nil,
		},
		{
			name: "default key, with metadata",
			key:  DefaultKey,
			meta: func() *Metadata {
				m := NewMetadata()
				m.InsertString("name", "test.txt")
				return m
			}(),
		},
		{
			name: "user-supplied key",
			key:  normalizeKey([]byte("Test Da Key!")),
			meta: nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			packed := packHeader(tc.key, tc.meta, DefaultVersion)

			fr := newFrameReader(bytes.NewReader(packed))
			var keyOverride []byte
			if tc.key != DefaultKey {
				keyOverride = tc.key[:]
			}
			hdr, hLen, err := unpackHeader(fr, keyOverride)
			if err != nil {
				t.Fatalf("unpackHeader() error = %v", err)
			}
			if hdr.key != tc.key {
				t.Errorf("resolved key = % x, want % x", hdr.key, tc.key)
			}
			wantLen := 0
			if tc.meta != nil {
				wantLen = tc.meta.Len()
			}
			if hdr.meta.Len() != wantLen {
				t.Errorf("meta.Len() = %d, want %d", hdr.meta.Len(), wantLen)
			}
			if int(hLen) != len(packed)-mandatoryHeaderSize {
				t.Errorf("hLen = %d, want %d", hLen, len(packed)-mandatoryHeaderSize)
			}
		})
	}
}

func TestUnpackHeaderBadMagic(t *testing.T) {
	t.Parallel()

	bad := make([]byte, mandatoryHeaderSize)
	copy(bad, []byte("XXXX"))

	_, _, err := unpackHeader(newFrameReader(bytes.NewReader(bad)), nil)
	if err == nil {
		t.Fatal("unpackHeader() error = nil, want ErrBadMagic")
	}
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("unpackHeader() error = %v, want ErrBadMagic", err)
	}
}

func TestUnpackHeaderKeySentinelWithoutOverride(t *testing.T) {
	t.Parallel()

	userKey := normalizeKey([]byte("Test Da Key!"))
	packed := packHeader(userKey, nil, DefaultVersion)

	hdr, _, err := unpackHeader(newFrameReader(bytes.NewReader(packed)), nil)
	if err != nil {
		t.Fatalf("unpackHeader() error = %v", err)
	}
	if hdr.key != DefaultKey {
		t.Errorf("resolved key = % x, want DefaultKey (fallback)", hdr.key)
	}
}
