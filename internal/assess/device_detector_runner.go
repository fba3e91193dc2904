package assess

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"golang.org/x/text/cases"

	"github.com/fulmenhq/iconcheck/internal/icons"
)

// DeviceDetectorRunner requires an icon for every category the device
// classifier can detect
type DeviceDetectorRunner struct{}

// NewDeviceDetectorRunner creates a new device detector runner
func NewDeviceDetectorRunner() *DeviceDetectorRunner {
	return &DeviceDetectorRunner{}
}

// GetCheck returns the check name
func (r *DeviceDetectorRunner) GetCheck() CheckName { return CheckDeviceDetector }

type expectedIcon struct {
	slug string
	name string
	key  string
}

// Assess classifies and looks up src/<icontype>/<slug>.* for every entry.
// Brands are named by display name, every other icon type by code.
func (r *DeviceDetectorRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	if ws.Classifier == nil {
		return skipped(r.GetCheck(), "no device detector command configured"), nil
	}

	m, err := ws.IgnoreManifest()
	if err != nil {
		return nil, err
	}

	categories, err := ws.Classifier.Classify(ctx)
	if err != nil {
		return nil, fmt.Errorf("device detector failed: %w", err)
	}

	icontypes := make([]string, 0, len(categories))
	for icontype := range categories {
		icontypes = append(icontypes, icontype)
	}
	sort.Strings(icontypes)

	fold := cases.Fold()
	var issues []Issue
	for _, icontype := range icontypes {
		expected := expectedIcons(icontype, categories[icontype], fold)
		for _, e := range expected {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if _, found := ws.Source.FindIcon(icontype, e.slug); found {
				continue
			}
			severity := SeverityError
			if m.IsLessImportant(icontype, e.slug) {
				severity = SeverityWarning
			}
			issues = append(issues, newIssue(r.GetCheck(), severity,
				path.Join(ws.Source.Dir(), icontype, e.slug),
				"icon for %s %s (%s) is missing", icontype, e.slug, e.name))
		}
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

// expectedIcons derives one slug per entry, deduplicated and ordered
// case-insensitively
func expectedIcons(icontype string, entries map[string]string, fold cases.Caser) []expectedIcon {
	seen := make(map[string]struct{}, len(entries))
	out := make([]expectedIcon, 0, len(entries))
	codes := make([]string, 0, len(entries))
	for code := range entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		name := entries[code]
		slug := code
		if icontype == icons.CategoryBrand {
			slug = icons.Slugify(name)
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, expectedIcon{slug: slug, name: name, key: fold.String(slug)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].key != out[j].key {
			return out[i].key < out[j].key
		}
		return out[i].slug < out[j].slug
	})
	return out
}

func init() {
	RegisterAssessmentRunner(CheckDeviceDetector, NewDeviceDetectorRunner())
}
