// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive prompt that runs toolbench commands.
//
// Each line is a command line without the leading "toolbench", for
// example `encode base64 hello`. History lives in memory only and is never
// written to disk, since lines contain the user's data.
//
// Slash commands:
//
//	/help, /h           Show help
//	/json               Toggle JSON output
//	/history            Show this session's commands
//	/quit, /q           Exit

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

// replBlocked are commands that take over the terminal or stdio.
var replBlocked = map[string]bool{"repl": true, "tui": true, "mcp": true}

// Repl evaluates toolbench command lines.
type Repl struct {
	app     *App
	json    bool
	history []string
	runs    int
	failed  int
}

// NewRepl creates a REPL that prints through app's streams.
func NewRepl(app *App) *Repl {
	return &Repl{app: app, json: app.JSON}
}

// Eval runs one input line. It returns false when the session should end.
func (r *Repl) Eval(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
		return false
	}
	if strings.HasPrefix(line, "/") {
		return r.slash(line)
	}

	r.history = append(r.history, line)
	args, err := splitArgs(line)
	if err != nil {
		fmt.Fprintf(r.app.Err, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		return true
	}
	if strings.EqualFold(args[0], "toolbench") {
		args = args[1:]
		if len(args) == 0 {
			return true
		}
	}
	if replBlocked[args[0]] {
		fmt.Fprintf(r.app.Err, "%s %q is not available inside the REPL\n", ErrorStyle.Render("[ERROR]"), args[0])
		return true
	}

	sub := &App{
		In:              strings.NewReader(""),
		Out:             r.app.Out,
		Err:             r.app.Err,
		StdinIsTerminal: func() bool { return true },
		Logger:          r.app.Logger,
	}
	var global []string
	if r.json {
		global = append(global, "--json")
	}
	if r.app.ConfigPath != "" {
		global = append(global, "--config", r.app.ConfigPath)
	}
	if r.app.NoColor {
		global = append(global, "--no-color")
	}

	r.runs++
	if code := sub.Run(append(global, args...)); code != ExitSuccess {
		r.failed++
	}
	return true
}

func (r *Repl) slash(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case "/help", "/h", "/?", "/":
		r.printHelp()
	case "/json":
		r.json = !r.json
		state := "off"
		if r.json {
			state = "on"
		}
		fmt.Fprintln(r.app.Out, DimStyle.Render("[JSON output "+state+"]"))
	case "/history":
		for i, h := range r.history {
			fmt.Fprintf(r.app.Out, "%3d  %s\n", i+1, h)
		}
	case "/quit", "/q", "/exit":
		return false
	default:
		fmt.Fprintf(r.app.Err, "%s unknown command: %s (type /help for commands)\n", ErrorStyle.Render("[ERROR]"), line)
	}
	return true
}

func (r *Repl) printHelp() {
	w := r.app.Out
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("Available Commands"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Any toolbench command, e.g.")
	fmt.Fprintln(w, DimStyle.Render("    encode base64 hello"))
	fmt.Fprintln(w, DimStyle.Render(`    cron "*/5 * * * *"`))
	fmt.Fprintln(w, DimStyle.Render(`    regex '\d+' "a1 b22"`))
	fmt.Fprintln(w)
	for _, c := range [][2]string{
		{"/help, /h", "Show this help"},
		{"/json", "Toggle JSON output"},
		{"/history", "Show this session's commands"},
		{"/quit, /q", "Exit"},
	} {
		fmt.Fprintf(w, "  %s  %s\n", promptStyle.Render(fmt.Sprintf("%-12s", c[0])), DimStyle.Render(c[1]))
	}
	fmt.Fprintln(w)
}

// printSummary reports the session totals on exit.
func (r *Repl) printSummary() {
	fmt.Fprintln(r.app.Out, DimStyle.Render(fmt.Sprintf("%d command(s), %d failed", r.runs, r.failed)))
}

// =============================================================================
// LINE EDITING
// =============================================================================

// Loop reads lines with liner until the user quits. Ctrl+C and Ctrl+D
// both end the session.
func (r *Repl) Loop(commands []string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, prefix) {
				out = append(out, c)
			}
		}
		return out
	})

	fmt.Fprintln(r.app.Out, TitleStyle.Render("toolbench REPL")+" "+DimStyle.Render("(/help for commands, Ctrl+D to exit)"))
	for {
		input, err := line.Prompt("toolbench> ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintln(r.app.Out)
			r.printSummary()
			return nil
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !r.Eval(input) {
			r.printSummary()
			return nil
		}
	}
}

// splitArgs splits a line into words. Single quotes keep text literally;
// inside double quotes only \" and \\ are escapes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, c := range line {
		switch {
		case escaped:
			if c != '"' && c != '\\' {
				cur.WriteRune('\\')
			}
			cur.WriteRune(c)
			escaped = false
		case quote == '\'':
			if c == '\'' {
				quote = 0
			} else {
				cur.WriteRune(c)
			}
		case quote == '"':
			switch c {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				cur.WriteRune(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inWord = true
		case unicode.IsSpace(c):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(c)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		args = append(args, cur.String())
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}

func newReplCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run toolbench commands at an interactive prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for _, c := range cmd.Root().Commands() {
				if !replBlocked[c.Name()] && !c.Hidden {
					names = append(names, c.Name())
				}
			}
			return NewRepl(a).Loop(names)
		},
	}
}
