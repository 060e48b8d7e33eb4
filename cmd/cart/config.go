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
	"path/filepath"
	"runtime"

	"gopkg.in/ini.v1"

	"github.com/arkeo-ca/cart"
)

// cliConfig is the parsed, merged form of the config file described in the
// tool's documentation: $HOME/.config/cart/cart.cfg on Linux,
// %APPDATA%\Cart\cart.cfg on Windows.
type cliConfig struct {
	KeepMeta      bool
	Force         bool
	Delete        bool
	RC4Key        []byte
	DefaultHeader *cart.Metadata
}

func configPath() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Cart", "cart.cfg")
		}
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cart", "cart.cfg")
}

// loadConfig reads the INI config file, if present. A missing file is not an
// error; an unreadable or malformed one is.
func loadConfig() (*cliConfig, error) {
	cfg := &cliConfig{}

	path := configPath()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: loading config %s: %w", ErrCart, path, err)
	}

	sec := f.Section("global")
	cfg.KeepMeta = sec.Key("keep_meta").MustBool(false)
	cfg.Force = sec.Key("force").MustBool(false)
	cfg.Delete = sec.Key("delete").MustBool(false)

	if raw := sec.Key("rc4_key").String(); raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding rc4_key: %w", ErrCart, err)
		}
		cfg.RC4Key = key
	}

	if raw := sec.Key("default_header").String(); raw != "" {
		meta, err := cart.ParseMetadataJSON([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding default_header: %w", ErrCart, err)
		}
		cfg.DefaultHeader = meta
	}

	return cfg, nil
}
