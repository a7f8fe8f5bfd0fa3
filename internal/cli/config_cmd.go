// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - config show|get|set|path commands.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/config"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change preferences",
		Long: `Show or change preferences.

Only preferences are stored. Tool input and output never are.

Keys: ` + strings.Join(config.Keys(), ", "),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.emit(cmd, output{Data: a.Config, Text: a.Config.String()})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "get <key>",
		Short:   "Print one setting",
		Example: "  toolbench config get format.indent",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.Config.Get(args[0])
			if err != nil {
				return &ConfigError{Err: err}
			}
			return a.emit(cmd, output{Data: map[string]any{"key": args[0], "value": v}, Text: fmt.Sprint(v)})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save it",
		Example: `  toolbench config set ui.theme light
  toolbench config set format.csv_delimiter ';'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.Config.Clone()
			if err := cfg.Set(args[0], args[1]); err != nil {
				return &ConfigError{Err: err}
			}
			if err := cfg.Validate(); err != nil {
				return &ConfigError{Err: err}
			}

			var (
				path string
				err  error
			)
			if a.ConfigPath != "" {
				path = a.ConfigPath
				err = config.SaveTo(cfg, path)
			} else {
				if path, err = config.Path(); err == nil {
					err = config.Save(cfg)
				}
			}
			if err != nil {
				return &ConfigError{Err: err}
			}

			a.Config = cfg
			config.SetGlobal(cfg)
			a.Logger.Info("config saved", "key", args[0], "path", path)
			v, _ := cfg.Get(args[0])
			return a.emit(cmd, output{
				Data: map[string]any{"key": args[0], "value": v, "path": path},
				Text: fmt.Sprintf("%s %s = %v", RenderStatus("ok"), args[0], v),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.ConfigPath
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return &ConfigError{Err: err}
				}
			}
			return a.emit(cmd, output{Data: map[string]string{"path": path}, Text: path})
		},
	})

	return cmd
}
