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

const (
	// cartMagic is the ASCII magic at the start of the mandatory header.
	cartMagic = "CART"

	// tracMagic is the ASCII magic at the start of the mandatory footer.
	tracMagic = "TRAC"

	// DefaultVersion is the only envelope version this package knows how to
	// read and write.
	DefaultVersion int16 = 1

	// mandatoryHeaderSize is the fixed size, in bytes, of the mandatory
	// header (magic, version, reserved, key slot, optional-header length).
	mandatoryHeaderSize = 38

	// mandatoryFooterSize is the fixed size, in bytes, of the mandatory
	// footer (magic, reserved, optional-footer position, optional-footer
	// length).
	mandatoryFooterSize = 28

	// keySize is the fixed size, in bytes, of an RC4 key as carried in the
	// header's key slot.
	keySize = 16
)

// DefaultKey is the built-in RC4 key used when the caller supplies none.
// Its bytes are embedded literally in the header's key slot; a
// user-supplied key is never written to disk and is instead represented by
// a slot of sixteen zero bytes.
var DefaultKey = [keySize]byte{
	0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
	0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
}

// zeroKey is the header key-slot sentinel meaning "the reader must supply
// the key out-of-band."
var zeroKey = [keySize]byte{}

// normalizeKey pads a caller-supplied key with zero bytes up to keySize, or
// truncates it, so that it always matches the RC4 key width the format
// expects.
func normalizeKey(k []byte) [keySize]byte {
	var out [keySize]byte
	copy(out[:], k)
	return out
}
