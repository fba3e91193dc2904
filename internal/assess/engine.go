/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package assess

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fulmenhq/iconcheck/pkg/buildinfo"
	"github.com/fulmenhq/iconcheck/pkg/logger"
)

// AssessmentEngine orchestrates a run of the consistency checks
type AssessmentEngine struct {
	runnerRegistry *AssessmentRunnerRegistry
}

// NewAssessmentEngine creates a new engine over the global registry
func NewAssessmentEngine() *AssessmentEngine {
	return &AssessmentEngine{
		runnerRegistry: GetAssessmentRunnerRegistry(),
	}
}

// RunAssessment runs every enabled check against the workspace. Checks are
// independent: a failing check never stops the others, and the report keeps
// priority order whatever the worker count.
func (e *AssessmentEngine) RunAssessment(ctx context.Context, ws *Workspace, config AssessmentConfig) (*AssessmentReport, error) {
	startTime := time.Now()

	checks, err := e.selectChecks(config)
	if err != nil {
		return nil, err
	}

	workerCount := config.Concurrency
	if workerCount < 1 {
		workerCount = 1
	}

	logger.Info(fmt.Sprintf("Starting assessment of %s with %d checks (workers=%d)", ws.Root, len(checks), workerCount))

	results := make([]CheckResult, len(checks))
	if workerCount == 1 {
		for i, check := range checks {
			results[i] = e.runCheck(ctx, ws, check, config)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(workerCount)
		for i, check := range checks {
			i, check := i, check // per-iteration copies (go < 1.22 loop semantics)
			g.Go(func() error {
				// each goroutine owns its slot
				results[i] = e.runCheck(ctx, ws, check, config)
				return nil
			})
		}
		_ = g.Wait()
	}

	report := &AssessmentReport{
		Metadata: ReportMetadata{
			GeneratedAt:   time.Now(),
			Tool:          "iconcheck",
			Version:       buildinfo.Version(),
			Target:        ws.Root,
			ExecutionTime: time.Since(startTime),
			Workers:       workerCount,
		},
		Summary: calculateSummary(results),
		Checks:  results,
	}
	for _, r := range results {
		if r.Status != StatusSkipped {
			report.Metadata.ChecksRun = append(report.Metadata.ChecksRun, string(r.Check))
		}
	}

	logger.Info(fmt.Sprintf("Assessment completed in %v: %d errors, %d warnings",
		report.Metadata.ExecutionTime, report.Summary.Errors, report.Summary.Warnings))

	return report, nil
}

// selectChecks applies the select/skip filters and rejects unknown names
func (e *AssessmentEngine) selectChecks(config AssessmentConfig) ([]CheckName, error) {
	for _, names := range [][]string{config.SelectedChecks, config.SkippedChecks} {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if _, ok := e.runnerRegistry.GetRunner(CheckName(n)); !ok {
				return nil, fmt.Errorf("unknown check %q (known: %s)", n, strings.Join(KnownChecks(), ", "))
			}
		}
	}

	var checks []CheckName
	for _, c := range e.runnerRegistry.GetChecks() {
		if config.enabled(c) {
			checks = append(checks, c)
		}
	}
	return checks, nil
}

// runCheck runs one check and maps its outcome to a CheckResult
func (e *AssessmentEngine) runCheck(ctx context.Context, ws *Workspace, check CheckName, config AssessmentConfig) CheckResult {
	cr := CheckResult{Check: check}

	runner, exists := e.runnerRegistry.GetRunner(check)
	if !exists {
		cr.Status = StatusError
		cr.Error = "no runner registered"
		return cr
	}
	if f, ok := runner.(foldedRunner); ok && ws.Config.CI.FoldOutput() {
		cr.Fold, cr.FoldHeading = f.FoldSection()
	}

	logger.Debug(fmt.Sprintf("Running %s check...", check))
	runStart := time.Now()
	rctx := ctx
	var cancel context.CancelFunc
	if config.Timeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, config.Timeout)
	}
	result, err := runner.Assess(rctx, ws)
	if cancel != nil {
		cancel()
	}
	cr.ExecutionTime = time.Since(runStart)

	switch {
	case err != nil:
		cr.Status = StatusError
		cr.Error = err.Error()
		logger.Error(fmt.Sprintf("%s check failed after %v: %v", check, cr.ExecutionTime, err))
		return cr
	case result == nil:
		cr.Status = StatusError
		cr.Error = "runner returned no result"
		return cr
	case result.SkipReason != "":
		cr.Status = StatusSkipped
		cr.SkipReason = result.SkipReason
		logger.Info(fmt.Sprintf("%s check skipped: %s", check, result.SkipReason))
		return cr
	case !result.Success:
		cr.Status = StatusError
		cr.Error = result.Error
		if cr.Error == "" {
			cr.Error = "check did not complete"
		}
	default:
		cr.Status = StatusSuccess
	}

	cr.Issues = make([]Issue, 0, len(result.Issues))
	for _, is := range result.Issues {
		if is.Check == "" {
			is.Check = check
		}
		switch is.Severity {
		case SeverityError:
			cr.ErrorCount++
		case SeverityWarning:
			cr.WarningCount++
		}
		cr.Issues = append(cr.Issues, is)
	}
	logger.Debug(fmt.Sprintf("%s check completed in %v", check, cr.ExecutionTime),
		logger.Int("errors", cr.ErrorCount), logger.Int("warnings", cr.WarningCount))
	return cr
}

// calculateSummary reduces check results to the run verdict
func calculateSummary(results []CheckResult) ReportSummary {
	var s ReportSummary
	for _, r := range results {
		s.Errors += r.ErrorCount
		s.Warnings += r.WarningCount
		if r.Failed() {
			s.FailedChecks++
		}
	}
	s.Passed = s.FailedChecks == 0
	return s
}
