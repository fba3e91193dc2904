/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assess

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AssessmentRunner defines the interface a consistency check implements
type AssessmentRunner interface {
	// Assess runs the check against the workspace and returns its findings
	Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error)

	// GetCheck returns the check this runner implements
	GetCheck() CheckName
}

// foldedRunner is implemented by checks whose output is collapsed in CI logs
type foldedRunner interface {
	FoldSection() (name, heading string)
}

// AssessmentConfig contains configuration for a run
type AssessmentConfig struct {
	// SelectedChecks restricts the run to these checks when non-empty
	SelectedChecks []string `json:"selected_checks"`
	// SkippedChecks are never run
	SkippedChecks []string `json:"skipped_checks"`
	// Concurrency > 1 runs checks on a bounded worker pool
	Concurrency int `json:"concurrency"`
	// Timeout applies per check; zero disables it
	Timeout time.Duration `json:"timeout"`
}

// DefaultAssessmentConfig returns the sequential default configuration
func DefaultAssessmentConfig() AssessmentConfig {
	return AssessmentConfig{
		SelectedChecks: []string{},
		SkippedChecks:  []string{},
		Concurrency:    1,
		Timeout:        5 * time.Minute,
	}
}

// enabled reports whether a check passes the select/skip filters
func (c AssessmentConfig) enabled(check CheckName) bool {
	for _, s := range c.SkippedChecks {
		if strings.TrimSpace(s) == string(check) {
			return false
		}
	}
	if len(c.SelectedChecks) == 0 {
		return true
	}
	for _, s := range c.SelectedChecks {
		if strings.TrimSpace(s) == string(check) {
			return true
		}
	}
	return false
}

// AssessmentRunnerRegistry manages available check runners
type AssessmentRunnerRegistry struct {
	runners map[CheckName]AssessmentRunner
}

// NewAssessmentRunnerRegistry creates a new registry for check runners
func NewAssessmentRunnerRegistry() *AssessmentRunnerRegistry {
	return &AssessmentRunnerRegistry{
		runners: make(map[CheckName]AssessmentRunner),
	}
}

// RegisterRunner registers the runner for a check
func (r *AssessmentRunnerRegistry) RegisterRunner(check CheckName, runner AssessmentRunner) {
	r.runners[check] = runner
}

// GetRunner returns the runner for a check
func (r *AssessmentRunnerRegistry) GetRunner(check CheckName) (AssessmentRunner, bool) {
	runner, exists := r.runners[check]
	return runner, exists
}

// GetChecks returns all registered checks in report order
func (r *AssessmentRunnerRegistry) GetChecks() []CheckName {
	checks := make([]CheckName, 0, len(r.runners))
	for check := range r.runners {
		checks = append(checks, check)
	}
	return OrderChecks(checks)
}

// Global registry instance
var globalRunnerRegistry = NewAssessmentRunnerRegistry()

// RegisterAssessmentRunner registers a runner globally
func RegisterAssessmentRunner(check CheckName, runner AssessmentRunner) {
	globalRunnerRegistry.RegisterRunner(check, runner)
}

// GetAssessmentRunnerRegistry returns the global runner registry
func GetAssessmentRunnerRegistry() *AssessmentRunnerRegistry {
	return globalRunnerRegistry
}

// ResetRegistryForTesting creates a fresh registry and sets it globally for test isolation
func ResetRegistryForTesting() *AssessmentRunnerRegistry {
	newReg := NewAssessmentRunnerRegistry()
	globalRunnerRegistry = newReg
	return newReg
}

// RestoreRegistry restores a previously saved registry for test teardown
func RestoreRegistry(saved *AssessmentRunnerRegistry) {
	globalRunnerRegistry = saved
}

// KnownChecks lists every check name with a registered runner
func KnownChecks() []string {
	checks := globalRunnerRegistry.GetChecks()
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = string(c)
	}
	return out
}

// newIssue builds a finding for check
func newIssue(check CheckName, severity IssueSeverity, file, format string, args ...interface{}) Issue {
	return Issue{
		File:     file,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Check:    check,
	}
}

// skipped is the result of a check that chose not to run
func skipped(check CheckName, reason string) *AssessmentResult {
	return &AssessmentResult{Check: check, Success: true, SkipReason: reason}
}
