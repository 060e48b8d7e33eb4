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
	"os"
	"path/filepath"
	"testing"
)

func TestPackFileSynthesizesHashes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "hello.txt")
	dst := filepath.Join(dir, "hello.txt.cart")

	if err := writeFile(t, src, "hello world"); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}

	if err := PackFile(src, dst, nil, nil, nil); err != nil {
		t.Fatalf("PackFile() error = %v", err)
	}

	headerMeta, footerMeta, err := ExamineFile(dst, nil)
	if err != nil {
		t.Fatalf("ExamineFile() error = %v", err)
	}

	if got, ok := headerMeta.Get("name"); !ok || got != "hello.txt" {
		t.Errorf("header[name] = %v, %v, want %q, true", got, ok, "hello.txt")
	}

	wantFields := map[string]string{
		"length": "11",
		"md5":    "5eb63bbbe01eeed093cb22bb8f5acdc3",
		"sha1":   "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		"sha256": "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
	}
	for k, want := range wantFields {
		got, ok := footerMeta.Get(k)
		if !ok {
			t.Errorf("footer missing field %q", k)
			continue
		}
		if got != want {
			t.Errorf("footer[%s] = %v, want %v", k, got, want)
		}
	}
}

func TestPackFileUnpackFileRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "sample.bin")
	packed := filepath.Join(dir, "sample.bin.cart")
	restored := filepath.Join(dir, "sample.bin.out")

	if err := writeFile(t, src, "round trip payload"); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}

	headerMeta := NewMetadata()
	headerMeta.InsertString("name", "sample.bin")

	if err := PackFile(src, packed, headerMeta, nil, nil); err != nil {
		t.Fatalf("PackFile() error = %v", err)
	}
	if !IsCartFile(packed) {
		t.Fatal("IsCartFile() = false, want true")
	}

	if _, _, err := UnpackFile(packed, restored, nil); err != nil {
		t.Fatalf("UnpackFile() error = %v", err)
	}

	got := readFile(t, restored)
	if got != "round trip payload" {
		t.Errorf("restored content = %q, want %q", got, "round trip payload")
	}
}

func TestIsCartFileNonexistent(t *testing.T) {
	t.Parallel()

	if IsCartFile(filepath.Join(t.TempDir(), "does-not-exist")) {
		t.Error("IsCartFile() = true for nonexistent path, want false")
	}
}

func writeFile(t *testing.T, path, contents string) error {
	t.Helper()
	return os.WriteFile(path, []byte(contents), 0o644)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	return string(b)
}
