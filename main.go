// toolbench - everyday developer utilities that never touch the network.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/toolbench/internal/cli"
)

// Version information (set at build time)
var Version = ""

func main() {
	if Version != "" {
		cli.Version = Version
	}
	os.Exit(cli.Execute())
}
