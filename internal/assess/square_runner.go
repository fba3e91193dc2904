package assess

import (
	"context"
	"time"

	"github.com/fulmenhq/iconcheck/internal/icons"
	"github.com/fulmenhq/iconcheck/pkg/imagesize"
)

// SquareRunner requires compiled icons to be square, flags excepted
type SquareRunner struct{}

// NewSquareRunner creates a new square runner
func NewSquareRunner() *SquareRunner {
	return &SquareRunner{}
}

// GetCheck returns the check name
func (r *SquareRunner) GetCheck() CheckName { return CheckSquare }

// Assess measures every compiled PNG. Listed exceptions downgrade a
// non-square icon to a warning.
func (r *SquareRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	m, err := ws.IgnoreManifest()
	if err != nil {
		return nil, err
	}

	if !ws.Dist.Exists() {
		return skipped(r.GetCheck(), "no compiled tree at "+ws.Dist.Dir()), nil
	}

	assets, err := ws.Dist.Find(icons.CompiledIcons)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, a := range assets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.Category == icons.CategoryFlags {
			continue
		}
		size, err := imagesize.Measure(a.AbsPath())
		if err != nil {
			issues = append(issues, newIssue(r.GetCheck(), SeverityError, a.Path,
				"%s cannot be measured: %v", a.Path, err))
			continue
		}
		if size.IsSquare() {
			continue
		}
		severity := SeverityError
		if m.IsNonSquareException(a.Path) {
			severity = SeverityWarning
		}
		issues = append(issues, newIssue(r.GetCheck(), severity, a.Path,
			"%s isn't square (%s)", a.Path, size))
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func init() {
	RegisterAssessmentRunner(CheckSquare, NewSquareRunner())
}
