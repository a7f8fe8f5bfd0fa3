// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - Command tree and process entry point.

package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/logging"
	"github.com/jeranaias/toolbench/internal/offline"
)

// Version is the toolbench release; overridden at link time.
var Version = "0.4.0"

// =============================================================================
// APP
// =============================================================================

// App holds the streams and settings shared by every command.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// StdinIsTerminal reports whether In is interactive. Piped input is
	// only read when it returns false.
	StdinIsTerminal func() bool

	Config *config.Config
	Logger *slog.Logger

	// Global flags
	JSON       bool
	ConfigPath string
	LogLevel   string
	NoColor    bool
}

// NewApp returns an App bound to the process streams.
func NewApp() *App {
	return &App{
		In:              os.Stdin,
		Out:             os.Stdout,
		Err:             os.Stderr,
		StdinIsTerminal: IsTTY,
		Config:          config.Default(),
		Logger:          logging.NewNop(),
	}
}

// Execute installs the offline guard and runs the command line in
// os.Args. It returns the process exit code.
func Execute() int {
	restore := offline.Enforce()
	defer restore()
	return NewApp().Run(os.Args[1:])
}

// Run executes args against a fresh command tree.
func (a *App) Run(args []string) int {
	root := NewRootCmd(a)
	root.SetArgs(args)

	cmd, err := root.ExecuteC()
	if err == nil {
		return ExitSuccess
	}
	if isCobraUsageError(err) {
		err = errUsage{err}
	}

	name := "toolbench"
	if cmd != nil {
		name = cmd.Name()
	}
	if a.JSON {
		DisplayError(a.Out, name, err, true)
	} else {
		DisplayError(a.Err, name, err, false)
		if GetExitCode(err) == ExitUsageError && cmd != nil {
			hint := "Run '" + cmd.CommandPath() + " --help' for usage."
			io.WriteString(a.Err, DimStyle.Render(hint)+"\n")
		}
	}
	return GetExitCode(err)
}

// isCobraUsageError matches the plain errors cobra returns for unknown
// commands and wrong argument counts.
func isCobraUsageError(err error) bool {
	var typed *ValidationError
	if errors.As(err, &typed) {
		return false
	}
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "accepts ", "requires at least", "requires at most", "invalid argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd builds the full command tree for a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "toolbench",
		Short: "Offline developer utilities",
		Long: `toolbench bundles everyday developer utilities: encoders, format
converters, a text diff, a JWT decoder, epoch and cron helpers, a regex
tester and a JSON Schema validator. Nothing leaves your machine.

Run without arguments to start the interactive shell.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell()
		},
	}

	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errUsage{err}
	})

	pf := root.PersistentFlags()
	pf.BoolVar(&a.JSON, "json", false, "Print results as a JSON envelope")
	pf.StringVar(&a.ConfigPath, "config", "", "Config file (default $TOOLBENCH_HOME/config.toml)")
	pf.StringVar(&a.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&a.NoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newConvertCmd(a),
		newPrettyCmd(a),
		newMinifyCmd(a),
		newQueryCmd(a),
		newDiffCmd(a),
		newJWTCmd(a),
		newEpochCmd(a),
		newDateCmd(a),
		newCronCmd(a),
		newRegexCmd(a),
		newSchemaCmd(a),
		newReplCmd(a),
		newTUICmd(a),
		newMCPCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
		newPrivacyCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger before any command runs.
func (a *App) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFromPath(a.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return &ConfigError{Err: err}
	}
	a.Config = cfg
	config.SetGlobal(cfg)

	levelName := cfg.Log.Level
	if a.LogLevel != "" {
		levelName = a.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return NewValidationErrorWithExample("--log-level", a.LogLevel, err.Error(), "--log-level debug")
	}
	a.Logger = logging.NewWriter(a.Err, level)

	if a.NoColor {
		ForceColorsEnabled(false)
	}
	a.Logger.Debug("config loaded", "theme", cfg.UI.Theme, "indent", cfg.Format.Indent)
	return nil
}
