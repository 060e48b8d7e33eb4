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
	"errors"
	"fmt"
)

// errCart is the base error all package-level sentinel errors wrap. Callers
// can test errors.Is(err, cart.errCart) is not exported; use the more
// specific sentinels below instead.
var errCart = errors.New("cart")

var (
	// ErrBadMagic indicates the mandatory header's magic bytes are not
	// "CART".
	ErrBadMagic = fmt.Errorf("%w: bad magic", errCart)

	// ErrUnsupportedVersion indicates the header's version field is not a
	// value this package knows how to read.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", errCart)

	// ErrTruncatedInput indicates the input ended before a required field
	// was fully read.
	ErrTruncatedInput = fmt.Errorf("%w: truncated input", errCart)

	// ErrCorruptFraming indicates the envelope's numeric offset/length
	// fields are internally inconsistent, e.g. the optional-footer
	// position falls before the end of the header, or implies a negative
	// body length.
	ErrCorruptFraming = fmt.Errorf("%w: corrupt framing", errCart)

	// ErrCorruptMetadata indicates a decrypted optional header or footer
	// did not parse as a JSON object. The most common cause is an
	// incorrect RC4 key.
	ErrCorruptMetadata = fmt.Errorf("%w: corrupt metadata", errCart)

	// ErrCorruptBody indicates the zlib body failed to decompress.
	ErrCorruptBody = fmt.Errorf("%w: corrupt body", errCart)
)
