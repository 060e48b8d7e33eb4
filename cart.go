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

// Package cart implements the CaRT (Compressed and RC4 Transport) container
// format: a single-file envelope that neutralizes potentially-malicious
// payloads for safe transport by compressing then encrypting them, while
// carrying structured metadata about the payload both before and after the
// opaque body.
//
// A CaRT file is laid out as:
//
//	[mandatory header : 38 bytes]
//	[optional header  : H bytes, RC4-encrypted]
//	[body             : B bytes, zlib-compressed then RC4-encrypted]
//	[optional footer  : F bytes, RC4-encrypted]
//	[mandatory footer : 28 bytes]
//
// The format provides obfuscation, not integrity or authentication: it is
// meant to keep EDR/AV/mail-scanning systems from acting on a payload in
// flight, not to protect it from a motivated attacker.
//
// See: https://github.com/arkeo-ca/cart
package cart
