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
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/arkeo-ca/cart"
)

// runOptions carries the flags and resolved config for a single invocation,
// shared across every input path given on the command line.
type runOptions struct {
	force     bool
	delete    bool
	keepMeta  bool
	showMeta  bool
	name      string
	outfile   string
	jsonmeta  string
	key       []byte
	defaultHd *cart.Metadata
}

func decodeBase64Key(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// runOne packs or unpacks path, auto-detecting direction: a file already
// recognizable as a CaRT container is unpacked, anything else is packed.
func runOne(c *cli.Context, path string, opts runOptions) error {
	if cart.IsCartFile(path) {
		return runUnpack(c, path, opts)
	}
	return runPack(c, path, opts)
}

func runPack(c *cli.Context, path string, opts runOptions) error {
	out := opts.outfile
	if out == "" {
		out = path + ".cart"
	}

	if !opts.force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%w: %s already exists, use --force to overwrite", ErrCart, out)
		}
	}

	sidecar, err := loadSidecar(path)
	if err != nil {
		return err
	}

	var jsonMeta *cart.Metadata
	if opts.jsonmeta != "" {
		jsonMeta, err = cart.ParseMetadataJSON([]byte(opts.jsonmeta))
		if err != nil {
			return fmt.Errorf("%w: parsing --jsonmeta: %w", ErrCart, err)
		}
	}

	headerMeta := buildHeaderMetadata(sidecar, jsonMeta, opts.defaultHd, opts.name)

	if opts.showMeta {
		fmt.Fprintln(c.App.Writer, string(headerMeta.JSON()))
		return nil
	}

	if err := cart.PackFile(path, out, headerMeta, nil, opts.key); err != nil {
		return fmt.Errorf("%w: packing %s: %w", ErrCart, path, err)
	}

	if opts.delete {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: removing %s: %w", ErrCart, path, err)
		}
	}

	return nil
}

func runUnpack(c *cli.Context, path string, opts runOptions) error {
	out := opts.outfile
	if out == "" {
		if strings.HasSuffix(path, ".cart") {
			out = strings.TrimSuffix(path, ".cart")
		} else {
			out = path + ".uncart"
		}
	}

	if opts.showMeta {
		headerMeta, footerMeta, err := cart.ExamineFile(path, opts.key)
		if err != nil {
			return fmt.Errorf("%w: examining %s: %w", ErrCart, path, err)
		}
		printMetadataTable(path, headerMeta, footerMeta)
		return nil
	}

	if !opts.force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%w: %s already exists, use --force to overwrite", ErrCart, out)
		}
	}

	headerMeta, footerMeta, err := cart.UnpackFile(path, out, opts.key)
	if err != nil {
		return fmt.Errorf("%w: unpacking %s: %w", ErrCart, path, err)
	}

	if opts.keepMeta {
		merged := cart.MergeMetadata(headerMeta, footerMeta)
		if err := writeSidecar(path, merged); err != nil {
			return err
		}
	}

	if opts.delete {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("%w: removing %s: %w", ErrCart, path, err)
		}
	}

	return nil
}

// printMetadataTable renders header and footer metadata as a two-section
// table, exercising the same tabular-output dependency a file-inspection
// subcommand would.
func printMetadataTable(path string, headerMeta, footerMeta *cart.Metadata) {
	tbl := table.New("file", "region", "key", "value")
	for _, k := range headerMeta.Keys() {
		v, _ := headerMeta.Get(k)
		tbl.AddRow(path, "header", k, fmt.Sprintf("%v", v))
	}
	for _, k := range footerMeta.Keys() {
		v, _ := footerMeta.Get(k)
		tbl.AddRow(path, "footer", k, fmt.Sprintf("%v", v))
	}
	tbl.Print()
}
