package assess

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"github.com/fulmenhq/iconcheck/internal/icons"
	"github.com/fulmenhq/iconcheck/pkg/imagesize"
)

// ImageQualityRunner points out source icons worth replacing. It only
// ever warns.
type ImageQualityRunner struct{}

// NewImageQualityRunner creates a new image quality runner
func NewImageQualityRunner() *ImageQualityRunner {
	return &ImageQualityRunner{}
}

// GetCheck returns the check name
func (r *ImageQualityRunner) GetCheck() CheckName { return CheckImageQuality }

// FoldSection names the CI log section of this check
func (r *ImageQualityRunner) FoldSection() (string, string) {
	return "small_icons", "improvable icons: (click to expand)"
}

// Assess looks at icons directly inside the quality categories: undersized
// rasters, lossy formats and ".todo" markers.
func (r *ImageQualityRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()
	minSize := ws.Config.MinImageSize

	var issues []Issue
	for _, category := range ws.Config.QualityCategories {
		assets, err := ws.Source.IconsIn(category)
		if err != nil {
			return nil, err
		}
		for _, a := range assets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if isRaster(a.Ext) {
				size, err := imagesize.Measure(a.AbsPath())
				switch {
				case err != nil:
					issues = append(issues, newIssue(r.GetCheck(), SeverityWarning, a.Path,
						"%s cannot be measured: %v", a.Path, err))
				case size.SmallerThan(minSize):
					issues = append(issues, newIssue(r.GetCheck(), SeverityWarning, a.Path,
						"%s is smaller (%s) than the target size (%dx%d)", a.Path, size, minSize, minSize))
				}
			}
			if a.IsLossy() {
				issues = append(issues, newIssue(r.GetCheck(), SeverityWarning, a.Path,
					"%s is saved in a lossy image format (%s). Maybe try to find a PNG or SVG from another source.", a.Path, a.Ext))
			}
			if note, ok := readTodo(a.TodoPath()); ok {
				msg := a.Path + " is marked as improvable"
				if note != "" {
					msg += ": " + note
				}
				issues = append(issues, newIssue(r.GetCheck(), SeverityWarning, a.Path, "%s", msg))
			}
		}
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func isRaster(ext string) bool {
	for _, f := range icons.RasterFormats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return false
}

// readTodo reports whether a todo marker exists and returns its first line
func readTodo(p string) (string, bool) {
	f, err := os.Open(p) // #nosec G304 -- companion of a discovered icon
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text()), true
	}
	return "", true
}

func init() {
	RegisterAssessmentRunner(CheckImageQuality, NewImageQualityRunner())
}
