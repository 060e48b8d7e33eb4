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

// Command cart packs and unpacks CaRT (Compressed and RC4 Transport)
// container files.
package main

import "os"

func main() {
	app := newCartApp()
	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler has already printed the diagnostic and exited;
		// this is only reached for errors urfave/cli raises itself, before
		// the app's ExitErrHandler runs.
		os.Exit(ExitCodeUnknownError)
	}
}
