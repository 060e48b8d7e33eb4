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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

const (
	// ExitCodeSuccess is the successful exit code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for any other error.
	ExitCodeUnknownError
)

// ErrCart is the base error for this command's own diagnostics.
var ErrCart = errors.New("cart")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = errors.New("parsing flags")

func init() {
	cli.HelpFlag = &cli.BoolFlag{
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func newCartApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Pack and unpack CaRT (Compressed and RC4 Transport) files.",
		Description: strings.Join([]string{
			"cart(1) packs a payload into a CaRT container, or unpacks one back",
			"out, auto-detecting direction per input file.",
			"https://github.com/arkeo-ca/cart",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite existing output files", DisableDefaultText: true},
			&cli.BoolFlag{Name: "delete", Aliases: []string{"d"}, Usage: "remove the source file on success", DisableDefaultText: true},
			&cli.BoolFlag{Name: "ignore", Aliases: []string{"i"}, Usage: "ignore the config file", DisableDefaultText: true},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "base64 RC4 key"},
			&cli.StringFlag{Name: "jsonmeta", Aliases: []string{"j"}, Usage: "extra header metadata as a JSON object"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "override the header's name field"},
			&cli.StringFlag{Name: "outfile", Aliases: []string{"o"}, Usage: "explicit output path (single-file mode only)"},
			&cli.BoolFlag{Name: "meta", Aliases: []string{"m"}, Usage: "on unpack, write a sidecar .cartmeta file", DisableDefaultText: true},
			&cli.BoolFlag{Name: "showmeta", Aliases: []string{"s"}, Usage: "print metadata only, do not pack/unpack", DisableDefaultText: true},
			&cli.BoolFlag{Name: "help", Aliases: []string{"h"}, Usage: "print this help text and exit", DisableDefaultText: true},
			&cli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: "print version information and exit", DisableDefaultText: true},
		},
		ArgsUsage:       "PATH...",
		Copyright:       "The CaRT Authors",
		HideHelp:        true,
		HideHelpCommand: true,
		Action:          runCart,
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			_ = must(fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err))
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}
			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}

func runCart(c *cli.Context) error {
	if c.Bool("help") {
		return cli.ShowAppHelp(c)
	}
	if c.Bool("version") {
		return printVersion(c)
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.ShowAppHelp(c)
	}

	if len(paths) > 1 && (c.String("outfile") != "" || c.String("name") != "") {
		return fmt.Errorf("%w: --outfile and --name require exactly one input path", ErrFlagParse)
	}

	var cfg *cliConfig
	if c.Bool("ignore") {
		cfg = &cliConfig{}
	} else {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
	}

	key := cfg.RC4Key
	if flagKey := c.String("key"); flagKey != "" {
		decoded, err := decodeBase64Key(flagKey)
		if err != nil {
			return fmt.Errorf("%w: decoding --key: %w", ErrFlagParse, err)
		}
		key = decoded
	}

	opts := runOptions{
		force:     c.Bool("force") || cfg.Force,
		delete:    c.Bool("delete") || cfg.Delete,
		keepMeta:  c.Bool("meta") || cfg.KeepMeta,
		showMeta:  c.Bool("showmeta"),
		name:      c.String("name"),
		outfile:   c.String("outfile"),
		jsonmeta:  c.String("jsonmeta"),
		key:       key,
		defaultHd: cfg.DefaultHeader,
	}

	for _, path := range paths {
		if err := runOne(c, path, opts); err != nil {
			return err
		}
	}
	return nil
}
