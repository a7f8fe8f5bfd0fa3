// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cron

import (
	"fmt"
	"strings"

	crondesc "github.com/lnquy/cron"
)

// Explainer turns a structurally valid expression into prose.
type Explainer interface {
	Explain(expr string) (string, error)
}

// ExplainerFunc adapts a function to Explainer.
type ExplainerFunc func(expr string) (string, error)

// Explain calls f.
func (f ExplainerFunc) Explain(expr string) (string, error) { return f(expr) }

// descriptorExplainer renders English descriptions with a 12-hour clock.
type descriptorExplainer struct {
	desc *crondesc.ExpressionDescriptor
}

// NewExplainer returns the verbose English explainer.
func NewExplainer() (Explainer, error) {
	d, err := crondesc.NewDescriptor(
		crondesc.Use24HourTimeFormat(false),
		crondesc.Verbose(true),
		crondesc.SetLocales(crondesc.Locale_en),
	)
	if err != nil {
		return nil, fmt.Errorf("create cron descriptor: %w", err)
	}
	return &descriptorExplainer{desc: d}, nil
}

// Explain describes the five standard fields and appends a year clause
// when a sixth field is present.
func (e *descriptorExplainer) Explain(expr string) (string, error) {
	fields := strings.Fields(expr)
	if len(fields) < 5 {
		return "", fmt.Errorf("expected at least 5 fields, got %d", len(fields))
	}

	text, err := e.desc.ToDescription(strings.Join(fields[:5], " "), crondesc.Locale_en)
	if err != nil {
		return "", err
	}
	if len(fields) == 6 {
		text += describeYear(fields[5])
	}
	return text, nil
}

// describeYear phrases the optional year field.
func describeYear(field string) string {
	switch {
	case field == "*":
		return ""
	case strings.HasPrefix(field, "*/"):
		return fmt.Sprintf(", every %s years", strings.TrimPrefix(field, "*/"))
	case strings.Contains(field, ","):
		return ", only in " + strings.Join(strings.Split(field, ","), ", ")
	case strings.Contains(field, "-"):
		bounds := strings.SplitN(field, "-", 2)
		return fmt.Sprintf(", %s through %s", bounds[0], bounds[1])
	}
	return ", only in " + field
}
