// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/logging"
)

func newTestRepl(t *testing.T) (*Repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	newRunner(t)
	var out, errb bytes.Buffer
	app := &App{
		In:     strings.NewReader(""),
		Out:    &out,
		Err:    &errb,
		Config: config.Default(),
		Logger: logging.NewNop(),
	}
	return NewRepl(app), &out, &errb
}

func TestRepl_RunsCommands(t *testing.T) {
	r, out, _ := newTestRepl(t)

	if !r.Eval(`encode base64 "hello world"`) {
		t.Fatal("Expected session to continue")
	}
	if out.String() != "aGVsbG8gd29ybGQ=\n" {
		t.Errorf("Expected encoded output, got %q", out.String())
	}

	out.Reset()
	r.Eval(`toolbench decode hex 6869`)
	if out.String() != "hi\n" {
		t.Errorf("Expected leading toolbench to be ignored, got %q", out.String())
	}
}

func TestRepl_NeverReadsStdin(t *testing.T) {
	r, _, errb := newTestRepl(t)
	r.Eval("encode base64")
	if !strings.Contains(errb.String(), "no input") {
		t.Errorf("Expected missing input error, got %q", errb.String())
	}
	if r.failed != 1 || r.runs != 1 {
		t.Errorf("Expected 1 failed run, got runs=%d failed=%d", r.runs, r.failed)
	}
}

func TestRepl_JSONToggle(t *testing.T) {
	r, out, _ := newTestRepl(t)
	r.Eval("/json")
	out.Reset()
	r.Eval("encode hex a")
	if !strings.Contains(out.String(), `"success": true`) {
		t.Errorf("Expected JSON envelope, got %q", out.String())
	}
}

func TestRepl_BlockedAndQuit(t *testing.T) {
	r, _, errb := newTestRepl(t)

	for _, cmd := range []string{"tui", "mcp", "repl"} {
		errb.Reset()
		if !r.Eval(cmd) {
			t.Errorf("%s: Expected session to continue", cmd)
		}
		if !strings.Contains(errb.String(), "not available") {
			t.Errorf("%s: Expected refusal, got %q", cmd, errb.String())
		}
	}

	for _, line := range []string{"quit", "EXIT", "/q", "/quit"} {
		if r.Eval(line) {
			t.Errorf("%q: Expected session to end", line)
		}
	}
}

func TestRepl_History(t *testing.T) {
	r, out, _ := newTestRepl(t)
	r.Eval("encode hex a")
	r.Eval("   ")
	r.Eval("/help")
	out.Reset()
	r.Eval("/history")
	if out.String() != "  1  encode hex a\n" {
		t.Errorf("Expected one history entry, got %q", out.String())
	}
}

func TestRepl_UnknownSlash(t *testing.T) {
	r, _, errb := newTestRepl(t)
	r.Eval("/bogus")
	if !strings.Contains(errb.String(), "unknown command: /bogus") {
		t.Errorf("Expected unknown command, got %q", errb.String())
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"encode base64 hi", []string{"encode", "base64", "hi"}},
		{`regex '\d+' "a 1"`, []string{"regex", `\d+`, "a 1"}},
		{`x "say \"hi\""`, []string{"x", `say "hi"`}},
		{`x "a\b"`, []string{"x", `a\b`}},
		{`x ''`, []string{"x", ""}},
		{"  spaced\tout  ", []string{"spaced", "out"}},
		{`cron "*/5 * * * *"`, []string{"cron", "*/5 * * * *"}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		if err != nil {
			t.Errorf("splitArgs(%q) error: %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitArgs(%q) = %q, expected %q", tt.line, got, tt.want)
		}
	}

	for _, bad := range []string{`x "open`, `x 'open`} {
		if _, err := splitArgs(bad); err == nil {
			t.Errorf("splitArgs(%q) expected error", bad)
		}
	}
}
