package assess

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"time"
)

// PlaceholdersRunner guards the fallback icons against corruption
type PlaceholdersRunner struct{}

// NewPlaceholdersRunner creates a new placeholders runner
func NewPlaceholdersRunner() *PlaceholdersRunner {
	return &PlaceholdersRunner{}
}

// GetCheck returns the check name
func (r *PlaceholdersRunner) GetCheck() CheckName { return CheckPlaceholders }

// Assess compares each configured placeholder against its SHA-256 digest
func (r *PlaceholdersRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	m, err := ws.IgnoreManifest()
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, p := range m.Placeholders() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := path.Join(p.Category, p.Filename)
		file := path.Join(ws.Source.Dir(), rel)

		digest, err := fileDigest(ws.Source.Abs(rel))
		if err != nil {
			issues = append(issues, newIssue(r.GetCheck(), SeverityError, file,
				"The placeholder icon %s is missing", file))
			continue
		}
		if digest != p.SHA256 {
			issues = append(issues, newIssue(r.GetCheck(), SeverityError, file,
				"The placeholder icon %s is invalid (sha256 %s, expected %s)", file, digest, p.SHA256))
		}
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

// fileDigest returns the lowercase hex SHA-256 of a regular file
func fileDigest(p string) (string, error) {
	f, err := os.Open(p) // #nosec G304 -- path built from the configured source tree
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", p)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func init() {
	RegisterAssessmentRunner(CheckPlaceholders, NewPlaceholdersRunner())
}
