// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/toolbench/internal/config"
)

// Run starts the shell on the alternate screen and blocks until the user
// quits. Changed UI preferences are written back to configPath, or to the
// default config file when configPath is empty.
func Run(cfg *config.Config, configPath string, logger *slog.Logger) error {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Log lines written over the alternate screen would garble it
	held := newHeldHandler(logger.Handler())
	defer held.flush()

	p := tea.NewProgram(New(cfg, slog.New(held)), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		save := config.Save
		if configPath != "" {
			save = func(c *config.Config) error { return config.SaveTo(c, configPath) }
		}
		savePreferences(cfg, m, logger, save)
	}
	return nil
}

// savePreferences persists the theme and sidebar state. Failures are logged
// only; the session itself succeeded.
func savePreferences(cfg *config.Config, m Model, logger *slog.Logger, save func(*config.Config) error) {
	ui, changed := m.Preferences()
	if !changed {
		return
	}
	next := cfg.Clone()
	next.UI = ui
	if err := save(next); err != nil {
		logger.Warn("could not save preferences", "err", err)
		return
	}
	logger.Debug("saved preferences", "theme", ui.Theme, "sidebar_width", ui.SidebarWidth, "sidebar_open", ui.SidebarOpen)
}

// =============================================================================
// HELD LOGGING
// =============================================================================

type heldRecord struct {
	h slog.Handler
	r slog.Record
}

// heldHandler keeps records until flush replays them through the handler
// they were logged against.
type heldHandler struct {
	next    slog.Handler
	mu      *sync.Mutex
	records *[]heldRecord
}

func newHeldHandler(next slog.Handler) *heldHandler {
	return &heldHandler{next: next, mu: &sync.Mutex{}, records: &[]heldRecord{}}
}

func (h *heldHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *heldHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, heldRecord{h: h.next, r: r.Clone()})
	return nil
}

func (h *heldHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &heldHandler{next: h.next.WithAttrs(attrs), mu: h.mu, records: h.records}
}

func (h *heldHandler) WithGroup(name string) slog.Handler {
	return &heldHandler{next: h.next.WithGroup(name), mu: h.mu, records: h.records}
}

// flush writes every held record and empties the buffer.
func (h *heldHandler) flush() {
	h.mu.Lock()
	records := *h.records
	*h.records = nil
	h.mu.Unlock()
	for _, hr := range records {
		_ = hr.h.Handle(context.Background(), hr.r)
	}
}
