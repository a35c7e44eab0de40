package apidoc

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var colorPass = color.New(color.FgGreen).SprintFunc()
var colorFail = color.New(color.FgRed).SprintFunc()

// FormatReport renders a report for terminals. Valid reports get a check
// mark and any warnings; invalid reports get a cross and the error list.
func FormatReport(report *ValidationReport) string {
	if report == nil {
		return ""
	}
	var b strings.Builder
	if report.Valid {
		b.WriteString(colorPass("✓") + " " + report.Summary)
		if len(report.Warnings) > 0 {
			b.WriteString("\n\nWarnings:")
			for _, w := range report.Warnings {
				b.WriteString(fmt.Sprintf("\n- %s: %s", w.Field, w.Message))
				if w.Suggestion != "" {
					b.WriteString(fmt.Sprintf(" (%s)", w.Suggestion))
				}
			}
		}
		return b.String()
	}
	b.WriteString(colorFail("✗") + " " + report.Summary)
	b.WriteString("\n\n")
	b.WriteString(FormatErrors(report.Errors))
	return b.String()
}

// FormatErrors renders an error list as numbered lines. Expected, received
// and fix lines appear only when the error carries them.
func FormatErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return "No validation errors"
	}
	unit := "validation error"
	if len(errs) > 1 {
		unit = "validation errors"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d %s:", len(errs), unit))
	for i, e := range errs {
		where := e.Path
		if where == "" {
			where = e.Field
		}
		b.WriteString(fmt.Sprintf("\n%d. [%s] %s: %s", i+1, e.Type, where, e.Message))
		if e.Expected != nil {
			b.WriteString(fmt.Sprintf("\n   expected: %v", e.Expected))
		}
		if e.Received != nil {
			b.WriteString(fmt.Sprintf("\n   received: %v", e.Received))
		}
		if e.FixSuggestion != "" {
			b.WriteString(fmt.Sprintf("\n   fix: %s", e.FixSuggestion))
		}
	}
	return b.String()
}
