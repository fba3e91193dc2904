package assess

import (
	"context"
	"os"
	"time"

	"github.com/fulmenhq/iconcheck/internal/icons"
)

// ConversionRunner verifies every source icon has a compiled counterpart
type ConversionRunner struct{}

// NewConversionRunner creates a new conversion runner
func NewConversionRunner() *ConversionRunner {
	return &ConversionRunner{}
}

// GetCheck returns the check name
func (r *ConversionRunner) GetCheck() CheckName { return CheckConversion }

// Assess reports source icons without a compiled PNG under the dist tree.
// Pull-request CI builds have no compiled tree and skip the check.
func (r *ConversionRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	if ws.Config.CI.IsPullRequest() {
		return skipped(r.GetCheck(), "pull request build"), nil
	}

	m, err := ws.IgnoreManifest()
	if err != nil {
		return nil, err
	}

	assets, err := ws.Source.Find(icons.AllIcons)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.IsIgnoredSource(a.Path) {
			continue
		}
		compiled := a.CompiledPath(ws.Dist.Dir())
		if info, err := os.Stat(ws.Path(compiled)); err == nil && info.Mode().IsRegular() {
			continue
		}
		issues = append(issues, newIssue(r.GetCheck(), SeverityError, compiled,
			"%s is missing (From %s)", compiled, a.Path))
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func init() {
	RegisterAssessmentRunner(CheckConversion, NewConversionRunner())
}
