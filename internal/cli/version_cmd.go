// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// version_cmd.go - version command.

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/offline"
)

// versionInfo is the --json payload of the version command.
type versionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Offline bool   `json:"offline"`
	Blocked int64  `json:"blocked"`
}

func newVersionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and offline guard status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version: Version,
				Go:      runtime.Version(),
				OS:      runtime.GOOS,
				Arch:    runtime.GOARCH,
				Offline: offline.IsEnforced(),
				Blocked: offline.Blocked(),
			}
			text := fmt.Sprintf("toolbench %s (%s, %s/%s)\n%s", info.Version, info.Go, info.OS, info.Arch, offline.Summary())
			return a.emit(cmd, output{Data: info, Text: text})
		},
	}
}
