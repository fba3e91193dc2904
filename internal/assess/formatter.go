/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assess

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// OutputFormat represents the format for report output
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text or json)", s)
	}
}

// Formatter handles formatting reports
type Formatter struct {
	format   OutputFormat
	useColor bool
}

// NewFormatter creates a new report formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// SetColor enables ANSI colours in the text format
func (f *Formatter) SetColor(enabled bool) {
	f.useColor = enabled
}

// FormatReport formats a report according to the configured format
func (f *Formatter) FormatReport(report *AssessmentReport) (string, error) {
	switch f.format {
	case FormatText:
		return f.formatText(report), nil
	case FormatJSON:
		return f.formatJSON(report)
	default:
		return "", fmt.Errorf("unsupported format: %s", f.format)
	}
}

// WriteReport writes a formatted report to the given writer
func (f *Formatter) WriteReport(w io.Writer, report *AssessmentReport) error {
	output, err := f.FormatReport(report)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(output))
	return err
}

func (f *Formatter) color(code, s string) string {
	if !f.useColor {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (f *Formatter) red(s string) string    { return f.color("31", s) }
func (f *Formatter) yellow(s string) string { return f.color("33", s) }
func (f *Formatter) green(s string) string  { return f.color("32", s) }
func (f *Formatter) bold(s string) string   { return f.color("1", s) }

// formatText prints one line per finding, then a per-check summary
func (f *Formatter) formatText(report *AssessmentReport) string {
	var sb strings.Builder

	for _, res := range report.Checks {
		if res.Fold != "" {
			fmt.Fprintf(&sb, "travis_fold:start:%s\n", res.Fold)
			if res.FoldHeading != "" {
				sb.WriteString(res.FoldHeading + "\n")
			}
		}
		for _, is := range res.Issues {
			switch is.Severity {
			case SeverityError:
				sb.WriteString(f.red("ERROR " + is.Message))
			default:
				sb.WriteString(f.yellow("WARN  " + is.Message))
			}
			sb.WriteString("\n")
		}
		if res.Status == StatusError && res.Error != "" {
			sb.WriteString(f.red(fmt.Sprintf("ERROR %s check failed: %s", res.Check, res.Error)) + "\n")
		}
		if res.Fold != "" {
			fmt.Fprintf(&sb, "travis_fold:end:%s\n", res.Fold)
		}
	}

	width := 0
	for _, res := range report.Checks {
		if w := runewidth.StringWidth(string(res.Check)); w > width {
			width = w
		}
	}

	if len(report.Checks) > 0 {
		sb.WriteString("\n" + f.bold("Summary") + "\n")
	}
	for _, res := range report.Checks {
		name := runewidth.FillRight(string(res.Check), width)
		var status string
		switch {
		case res.Status == StatusSkipped:
			status = "skipped"
			if res.SkipReason != "" {
				status += " (" + res.SkipReason + ")"
			}
		case res.Status == StatusError:
			status = f.red("failed")
		case res.ErrorCount > 0:
			status = f.red(fmt.Sprintf("%d error(s), %d warning(s)", res.ErrorCount, res.WarningCount))
		case res.WarningCount > 0:
			status = f.yellow(fmt.Sprintf("%d warning(s)", res.WarningCount))
		default:
			status = f.green("ok")
		}
		fmt.Fprintf(&sb, "  %s  %s\n", name, status)
	}

	verdict := f.green("PASSED")
	if report.Failed() {
		verdict = f.red("FAILED")
	}
	fmt.Fprintf(&sb, "%s: %d error(s), %d warning(s)\n", verdict, report.Summary.Errors, report.Summary.Warnings)

	return sb.String()
}

// formatJSON emits the full report
func (f *Formatter) formatJSON(report *AssessmentReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data) + "\n", nil
}
