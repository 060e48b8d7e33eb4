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
	"fmt"
	"io"
)

// packEnvelope builds a complete CaRT byte stream from plaintext, encrypting
// it and the optional header/footer metadata under key.
//
// optFooterPos is computed as mandatoryHeaderSize + H + B (the offset
// immediately following the body), per the envelope's own framing -- the
// header and footer codecs never need to know this arithmetic themselves.
func packEnvelope(plaintext []byte, headerMeta, footerMeta *Metadata, key [keySize]byte) ([]byte, error) {
	compressed, err := compress(plaintext)
	if err != nil {
		return nil, err
	}

	h := packHeader(key, headerMeta, DefaultVersion)
	bodyCipher := processRegion(key, compressed)
	optFooterPos := int64(len(h)) + int64(len(bodyCipher))
	f := packFooter(key, footerMeta, optFooterPos)

	out := make([]byte, 0, len(h)+len(bodyCipher)+len(f))
	out = append(out, h...)
	out = append(out, bodyCipher...)
	out = append(out, f...)
	return out, nil
}

// envelopeFraming holds the parsed structural state of a CaRT stream: its
// resolved key, both metadata objects, and the body's byte span. It is
// shared by unpackEnvelope (which also decrypts and inflates the body) and
// examineEnvelope (which does not touch the body at all).
type envelopeFraming struct {
	key        [keySize]byte
	headerMeta *Metadata
	footerMeta *Metadata
	bodyStart  int64
	bodyEnd    int64
}

// readEnvelopeFraming parses the mandatory header, mandatory footer, and
// both optional metadata regions of r, validating that the implied body span
// is well-formed. It never reads the body itself.
func readEnvelopeFraming(r io.ReadSeeker, keyOverride []byte) (*envelopeFraming, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seek to measure input: %w", errCart, err)
	}
	if size < mandatoryHeaderSize+mandatoryFooterSize {
		return nil, fmt.Errorf("%w: input smaller than the mandatory header and footer combined", ErrTruncatedInput)
	}

	fr := newFrameReader(r)
	if err := fr.seekFromStart(0); err != nil {
		return nil, err
	}

	hdr, hLen, err := unpackHeader(fr, keyOverride)
	if err != nil {
		return nil, err
	}

	ftr, err := unpackFooter(fr, hdr.key, size)
	if err != nil {
		return nil, err
	}

	bodyStart := int64(mandatoryHeaderSize) + hLen
	bodyEnd := ftr.optFooterPos
	if bodyEnd < bodyStart {
		return nil, fmt.Errorf("%w: optional-footer position precedes end of header", ErrCorruptFraming)
	}
	if bodyEnd > size-mandatoryFooterSize {
		return nil, fmt.Errorf("%w: optional-footer position overruns mandatory footer", ErrCorruptFraming)
	}

	return &envelopeFraming{
		key:        hdr.key,
		headerMeta: hdr.meta,
		footerMeta: ftr.meta,
		bodyStart:  bodyStart,
		bodyEnd:    bodyEnd,
	}, nil
}

// unpackEnvelope parses r's framing, then decrypts and inflates the body,
// returning the recovered plaintext alongside both metadata objects.
func unpackEnvelope(r io.ReadSeeker, keyOverride []byte) (plaintext []byte, headerMeta, footerMeta *Metadata, err error) {
	framing, err := readEnvelopeFraming(r, keyOverride)
	if err != nil {
		return nil, nil, nil, err
	}

	fr := newFrameReader(r)
	if err := fr.seekFromStart(framing.bodyStart); err != nil {
		return nil, nil, nil, err
	}
	bodyCipher, err := fr.readExact(int(framing.bodyEnd - framing.bodyStart))
	if err != nil {
		return nil, nil, nil, err
	}

	plaintext, err = decompress(processRegion(framing.key, bodyCipher))
	if err != nil {
		return nil, nil, nil, err
	}

	return plaintext, framing.headerMeta, framing.footerMeta, nil
}

// examineEnvelope parses r's framing and returns both metadata objects
// without ever decrypting or inflating the body.
func examineEnvelope(r io.ReadSeeker, keyOverride []byte) (headerMeta, footerMeta *Metadata, err error) {
	framing, err := readEnvelopeFraming(r, keyOverride)
	if err != nil {
		return nil, nil, err
	}
	return framing.headerMeta, framing.footerMeta, nil
}

// mergedMetadata implements the envelope's public metadata() accessor: the
// header object, overlaid with the footer object, footer winning ties.
func mergedMetadata(headerMeta, footerMeta *Metadata) *Metadata {
	return headerMeta.merge(footerMeta)
}
