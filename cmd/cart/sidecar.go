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

package main

import (
	"fmt"
	"os"

	"github.com/arkeo-ca/cart"
)

// footerOwnedKeys are the fields pack_file always synthesizes into the
// footer. A sidecar, -j, config default_header, or --name value supplying
// one of these for the header is stripped to avoid duplication.
var footerOwnedKeys = []string{"length", "md5", "sha1", "sha256"}

func sidecarPath(inputPath string) string {
	return inputPath + ".cartmeta"
}

// loadSidecar reads <inputPath>.cartmeta, if present, returning an empty
// Metadata if it does not exist.
func loadSidecar(inputPath string) (*cart.Metadata, error) {
	raw, err := os.ReadFile(sidecarPath(inputPath))
	if err != nil {
		if os.IsNotExist(err) {
			return cart.NewMetadata(), nil
		}
		return nil, fmt.Errorf("%w: reading sidecar: %w", ErrCart, err)
	}
	meta, err := cart.ParseMetadataJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing sidecar: %w", ErrCart, err)
	}
	return meta, nil
}

// writeSidecar writes meta as a sidecar file alongside inputPath.
func writeSidecar(inputPath string, meta *cart.Metadata) error {
	if err := os.WriteFile(sidecarPath(inputPath), meta.JSON(), 0o644); err != nil {
		return fmt.Errorf("%w: writing sidecar: %w", ErrCart, err)
	}
	return nil
}

// buildHeaderMetadata assembles the pack-time header object in the
// documented precedence order: sidecar entries first, then -j entries, then
// the config file's default_header, then --name, each later source
// overwriting any earlier entry of the same key. Footer-owned keys are
// stripped from every source before merge.
func buildHeaderMetadata(sidecar, jsonMeta, defaultHeader *cart.Metadata, name string) *cart.Metadata {
	out := cart.NewMetadata()

	merge := func(src *cart.Metadata) {
		if src == nil {
			return
		}
		for _, k := range src.Keys() {
			if isFooterOwnedKey(k) {
				continue
			}
			v, _ := src.Get(k)
			out.Insert(k, v)
		}
	}

	merge(sidecar)
	merge(jsonMeta)
	merge(defaultHeader)
	if name != "" {
		out.InsertString("name", name)
	}

	return out
}

func isFooterOwnedKey(key string) bool {
	for _, k := range footerOwnedKeys {
		if k == key {
			return true
		}
	}
	return false
}
