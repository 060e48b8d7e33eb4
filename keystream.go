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

import "crypto/rc4"

// processRegion runs a single, freshly-keyed RC4 (ARCFOUR, no discard
// prefix) keystream over in and returns the result. RC4 is its own inverse,
// so the same function encrypts and decrypts.
//
// Every framed region (optional header, body, optional footer) gets its own
// call to processRegion so that each cipher instance starts its keystream
// at offset zero; a single *rc4.Cipher must never be reused across regions.
func processRegion(key [keySize]byte, in []byte) []byte {
	c, err := rc4.NewCipher(key[:])
	if err != nil {
		// rc4.NewCipher only fails when the key length falls outside
		// [1, 256]; key is always exactly keySize bytes here.
		panic(err)
	}
	out := make([]byte, len(in))
	c.XORKeyStream(out, in)
	return out
}
