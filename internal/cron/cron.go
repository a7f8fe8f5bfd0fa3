// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cron

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// =============================================================================
// TYPES
// =============================================================================

// ParseResult is the outcome of Parse. Valid false with a nil Error means
// there was no input yet.
type ParseResult struct {
	Valid       bool     `json:"valid"`
	Explanation *string  `json:"explanation"`
	Parts       []string `json:"parts"`
	Error       *string  `json:"error"`
}

// FieldNames labels the five standard fields in order.
var FieldNames = []string{"Minute", "Hour", "Day of Month", "Month", "Day of Week"}

const layoutHint = "Format: minute hour day-of-month month day-of-week [year]"

var (
	allowedChars = regexp.MustCompile(`(?i)^[\d*,\-/JFMASONDLW#]+$`)

	yearPattern = regexp.MustCompile(`^(\*|\d{4}(-\d{4})?(,\d{4}(-\d{4})?)*|\*/\d+)$`)

	fieldPatterns = []*regexp.Regexp{
		// minute: 0-59
		regexp.MustCompile(`^(\*|[0-5]?\d)(/\d+)?$|^(\d+(-\d+)?)(,\d+(-\d+)?)*$`),
		// hour: 0-23
		regexp.MustCompile(`^(\*|[01]?\d|2[0-3])(/\d+)?$|^(\d+(-\d+)?)(,\d+(-\d+)?)*$`),
		// day of month: 1-31 or L
		regexp.MustCompile(`(?i)^(\*|[1-9]|[12]\d|3[01])(/\d+)?$|^(\d+(-\d+)?)(,\d+(-\d+)?)*$|^L$`),
		// month: 1-12
		regexp.MustCompile(`^(\*|[1-9]|1[0-2])(/\d+)?$|^(\d+(-\d+)?)(,\d+(-\d+)?)*$`),
		// day of week: 0-7
		regexp.MustCompile(`^(\*|[0-7])(/\d+)?$|^(\d+(-\d+)?)(,\d+(-\d+)?)*$`),
	}
)

// =============================================================================
// PARSER
// =============================================================================

// Parser validates cron expressions and explains them through an Explainer.
type Parser struct {
	Explainer Explainer
}

// NewParser returns a parser using the given explainer.
func NewParser(e Explainer) *Parser {
	return &Parser{Explainer: e}
}

// Parse checks the field count and characters of expr, then asks the
// explainer for a description. Every invalid field is reported, not just
// the first.
func (p *Parser) Parse(expr string) (res ParseResult) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return ParseResult{}
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 5 || len(fields) > 6 {
		return failed(fmt.Sprintf("Expected 5 or 6 fields, got %d. %s", len(fields), layoutHint), nil)
	}
	parts := append([]string(nil), fields[:5]...)

	var fieldErrors []string
	for i, field := range parts {
		if !allowedChars.MatchString(field) {
			fieldErrors = append(fieldErrors, FieldNames[i]+": contains invalid characters")
		}
	}
	if len(fields) == 6 && !yearPattern.MatchString(fields[5]) {
		fieldErrors = append(fieldErrors, "Year: expected *, */N or four-digit years")
	}
	if len(fieldErrors) > 0 {
		return failed(strings.Join(fieldErrors, "; "), parts)
	}

	defer func() {
		if r := recover(); r != nil {
			res = failed(fmt.Sprintf("Invalid cron expression: %v", r), parts)
		}
	}()

	if p.Explainer == nil {
		return failed("no cron explainer configured", parts)
	}
	explanation, err := p.Explainer.Explain(strings.Join(fields, " "))
	if err != nil {
		return failed(err.Error(), parts)
	}
	return ParseResult{Valid: true, Explanation: &explanation, Parts: parts}
}

func failed(msg string, parts []string) ParseResult {
	return ParseResult{Error: &msg, Parts: parts}
}

// IsValidField applies the per-position pattern for field index 0-4.
func IsValidField(field string, index int) bool {
	if index < 0 || index >= len(fieldPatterns) {
		return false
	}
	return fieldPatterns[index].MatchString(field)
}

// =============================================================================
// DEFAULT PARSER
// =============================================================================

var (
	defaultOnce   sync.Once
	defaultParser *Parser
	defaultErr    error
)

// Parse uses a shared parser backed by the English verbose explainer.
func Parse(expr string) ParseResult {
	defaultOnce.Do(func() {
		var e Explainer
		e, defaultErr = NewExplainer()
		defaultParser = NewParser(e)
	})
	if defaultErr != nil {
		msg := defaultErr.Error()
		return ParseResult{Error: &msg}
	}
	return defaultParser.Parse(expr)
}

// =============================================================================
// EXAMPLES
// =============================================================================

// Example is a sample expression with a short description.
type Example struct {
	Expression  string `json:"expression"`
	Description string `json:"description"`
}

// Examples returns common schedules for quick reference.
func Examples() []Example {
	return []Example{
		{"0 0 * * *", "Every day at midnight"},
		{"*/15 * * * *", "Every 15 minutes"},
		{"0 9 * * 1-5", "Weekdays at 9 AM"},
		{"0 0 1 * *", "First day of every month"},
		{"30 4 1,15 * *", "4:30 AM on the 1st and 15th"},
	}
}
