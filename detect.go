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

import "io"

// IsCart reports whether r begins with a CaRT mandatory header this package
// can read: magic "CART" followed by a version field equal to DefaultVersion.
// It never returns an error; any read failure, short read, or mismatch is
// reported as false, the same sniff-test contract the reference
// implementation's own is_cart gives callers deciding how to branch on an
// unknown file.
func IsCart(r io.Reader) bool {
	buf := make([]byte, 6)
	if _, err := io.ReadFull(r, buf); err != nil {
		return false
	}
	if string(buf[:4]) != cartMagic {
		return false
	}
	version := int16(uint16(buf[4]) | uint16(buf[5])<<8)
	return version == DefaultVersion
}
