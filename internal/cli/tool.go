// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tool.go - Input resolution, output and watch mode shared by tool commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/watch"
)

// =============================================================================
// INPUT FLAGS
// =============================================================================

// ioFlags are the input and output flags every tool command accepts.
type ioFlags struct {
	File  string
	Watch bool
	Copy  bool
}

func addIOFlags(cmd *cobra.Command, f *ioFlags) {
	cmd.Flags().StringVarP(&f.File, "file", "f", "", "Read input from a file ('-' for stdin)")
	cmd.Flags().BoolVarP(&f.Watch, "watch", "w", false, "Re-run whenever --file changes")
	cmd.Flags().BoolVarP(&f.Copy, "copy", "c", false, "Copy the output to the clipboard")
}

// readInput picks the input from args, then --file, then piped stdin.
// A single trailing newline from stdin is dropped.
func (a *App) readInput(args []string, file, usage string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	}
	if file == "-" || (a.StdinIsTerminal != nil && !a.StdinIsTerminal()) {
		data, err := io.ReadAll(a.In)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		s := strings.TrimSuffix(string(data), "\n")
		return strings.TrimSuffix(s, "\r"), nil
	}
	return "", ErrMissingInput(usage)
}

// =============================================================================
// OUTPUT
// =============================================================================

// output is what a tool run produced: data for --json, text otherwise.
// Copy is the plain text put on the clipboard; it defaults to Text.
type output struct {
	Data any
	Text string
	Copy string
}

// emit prints out for cmd.
func (a *App) emit(cmd *cobra.Command, out output) error {
	if a.JSON {
		return NewJSONResponse(cmd.Name(), out.Data).Write(a.Out)
	}
	if out.Text == "" {
		return nil
	}
	_, err := io.WriteString(a.Out, strings.TrimSuffix(out.Text, "\n")+"\n")
	return err
}

// copyOutput puts text on the system clipboard. Failure is reported but
// not fatal since headless systems often lack a clipboard.
func (a *App) copyOutput(text string) {
	if err := clipboard.WriteAll(text); err != nil {
		a.Logger.Warn("clipboard unavailable", "error", err)
		fmt.Fprintln(a.Err, WarningStyle.Render("[WARN] could not copy to clipboard: "+err.Error()))
		return
	}
	a.Logger.Debug("copied output", "bytes", len(text))
}

// =============================================================================
// TOOL RUNNER
// =============================================================================

// toolFunc runs one tool over input.
type toolFunc func(input string) (output, error)

// runTool resolves input, runs fn, prints the result and handles --copy
// and --watch.
func (a *App) runTool(cmd *cobra.Command, args []string, f *ioFlags, usage string, fn toolFunc) error {
	if f.Watch && (f.File == "" || f.File == "-") {
		return NewValidationErrorWithExample("--watch", "", "requires --file", cmd.CommandPath()+" --file input.txt --watch")
	}

	once := func() error {
		input, err := a.readInput(args, f.File, usage)
		if err != nil {
			return err
		}
		out, err := fn(input)
		if err != nil {
			return err
		}
		if err := a.emit(cmd, out); err != nil {
			return err
		}
		if f.Copy {
			text := out.Copy
			if text == "" {
				text = out.Text
			}
			a.copyOutput(text)
		}
		return nil
	}

	if !f.Watch {
		return once()
	}

	if err := once(); err != nil {
		DisplayError(a.Err, cmd.Name(), err, false)
	}

	w, err := watch.New(f.File, watch.WithLogger(a.Logger))
	if err != nil {
		return &CommandError{Command: cmd.Name(), Reason: "cannot watch file", Err: err}
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	a.Logger.Info("watching", "path", w.Path())
	fmt.Fprintln(a.Err, DimStyle.Render("Watching "+w.Path()+" (Ctrl+C to stop)"))
	return w.Run(ctx, func() {
		fmt.Fprintln(a.Out, DimStyle.Render("--- "+w.Path()+" changed ---"))
		if err := once(); err != nil {
			DisplayError(a.Err, cmd.Name(), err, false)
		}
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// toolError converts a tool's failure message into a CommandError.
func toolError(cmd *cobra.Command, msg string) error {
	return NewCommandError(cmd.Name(), msg)
}
