package assess

import (
	"context"
	"os"
	"time"
)

// AttributionRunner requires a ".source" companion next to every original icon
type AttributionRunner struct{}

// NewAttributionRunner creates a new attribution runner
func NewAttributionRunner() *AttributionRunner {
	return &AttributionRunner{}
}

// GetCheck returns the check name
func (r *AttributionRunner) GetCheck() CheckName { return CheckAttribution }

// Assess checks the attribution categories. Symlinks inherit the
// attribution of their target and placeholder names need none.
func (r *AttributionRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	var issues []Issue
	for _, category := range ws.Config.AttributionCategories {
		assets, err := ws.Source.IconsIn(category)
		if err != nil {
			return nil, err
		}
		for _, a := range assets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if a.Symlink || a.IsPlaceholderName() {
				continue
			}
			if info, err := os.Stat(a.AttributionPath()); err == nil && !info.IsDir() {
				continue
			}
			issues = append(issues, newIssue(r.GetCheck(), SeverityError, a.Path,
				"Source is missing for %s", a.Path))
		}
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func init() {
	RegisterAssessmentRunner(CheckAttribution, NewAttributionRunner())
}
