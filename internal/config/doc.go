// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for toolbench.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation. Only preferences are
// stored; tool input and output never are.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - UIConfig: Theme and sidebar settings
//   - FormatConfig: Indent, CSV and epoch defaults
//   - ValidateErrors: All validation failures at once
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TOOLBENCH_*)
//   - $TOOLBENCH_HOME/config.toml (default ~/.toolbench)
//   - $TOOLBENCH_HOME/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	_ = cfg.Set("format.indent", "4")
//	if err := cfg.Validate(); err == nil {
//	    _ = config.Save(cfg)
//	}
package config
