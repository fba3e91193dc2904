/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assess

import (
	"time"
)

// CheckName identifies a consistency check
type CheckName string

const (
	CheckConversion     CheckName = "conversion"
	CheckAttribution    CheckName = "attribution"
	CheckSymlinks       CheckName = "symlinks"
	CheckPlaceholders   CheckName = "placeholders"
	CheckSquare         CheckName = "square"
	CheckImageQuality   CheckName = "image-quality"
	CheckBuildScript    CheckName = "build-script"
	CheckSearchEngines  CheckName = "search-engines"
	CheckSocials        CheckName = "socials"
	CheckDeviceDetector CheckName = "device-detector"
)

// IssueSeverity represents the severity level of a finding. Only errors
// fail a run.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Check status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Issue represents a single finding
type Issue struct {
	File     string        `json:"file,omitempty"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
	Check    CheckName     `json:"check"`
}

// AssessmentResult is what a runner returns for one check
type AssessmentResult struct {
	Check         CheckName     `json:"check"`
	Success       bool          `json:"success"`
	ExecutionTime time.Duration `json:"execution_time"`
	Issues        []Issue       `json:"issues"`
	Error         string        `json:"error,omitempty"`
	SkipReason    string        `json:"skip_reason,omitempty"`
}

// CheckResult represents the outcome of one check in the report
type CheckResult struct {
	Check         CheckName     `json:"check"`
	Status        string        `json:"status"` // "success", "error", "skipped"
	Error         string        `json:"error,omitempty"`
	SkipReason    string        `json:"skip_reason,omitempty"`
	Issues        []Issue       `json:"issues"`
	ErrorCount    int           `json:"error_count"`
	WarningCount  int           `json:"warning_count"`
	ExecutionTime time.Duration `json:"execution_time"`
	// Fold names the CI fold section bracketing this check's output
	Fold        string `json:"fold,omitempty"`
	FoldHeading string `json:"fold_heading,omitempty"`
}

// Failed reports whether this check fails the run
func (r CheckResult) Failed() bool {
	return r.Status == StatusError || r.ErrorCount > 0
}

// AssessmentReport represents the complete report of a run
type AssessmentReport struct {
	Metadata ReportMetadata `json:"metadata"`
	Summary  ReportSummary  `json:"summary"`
	Checks   []CheckResult  `json:"checks"`
}

// ReportMetadata contains metadata about the run
type ReportMetadata struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	Tool          string        `json:"tool"`
	Version       string        `json:"version"`
	Target        string        `json:"target"`
	ExecutionTime time.Duration `json:"execution_time"`
	ChecksRun     []string      `json:"checks_run"`
	Workers       int           `json:"workers"`
}

// ReportSummary provides run statistics
type ReportSummary struct {
	Passed       bool `json:"passed"`
	Errors       int  `json:"errors"`
	Warnings     int  `json:"warnings"`
	FailedChecks int  `json:"failed_checks"`
}

// Failed reports whether any check reported an error
func (r *AssessmentReport) Failed() bool {
	return !r.Summary.Passed
}

// Issues returns every finding in check order
