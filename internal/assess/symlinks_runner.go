package assess

import (
	"context"
	"os"
	"time"

	"github.com/fulmenhq/iconcheck/internal/icons"
)

// SymlinksRunner reports dangling symlinks in the source tree
type SymlinksRunner struct{}

// NewSymlinksRunner creates a new symlinks runner
func NewSymlinksRunner() *SymlinksRunner {
	return &SymlinksRunner{}
}

// GetCheck returns the check name
func (r *SymlinksRunner) GetCheck() CheckName { return CheckSymlinks }

// Assess resolves every symlink below the source root
func (r *SymlinksRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	entries, err := ws.Source.Find(icons.Everything)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, a := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !a.Symlink {
			continue
		}
		if _, err := os.Stat(a.AbsPath()); err == nil {
			continue
		}
		target, err := os.Readlink(a.AbsPath())
		if err != nil {
			target = "?"
		}
		issues = append(issues, newIssue(r.GetCheck(), SeverityError, a.Path,
			"Symlink doesn't link to a file (from %s to %s)", a.Path, target))
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func init() {
	RegisterAssessmentRunner(CheckSymlinks, NewSymlinksRunner())
}
