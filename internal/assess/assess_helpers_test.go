package assess

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/iconcheck/pkg/config"
	"github.com/fulmenhq/iconcheck/pkg/devicedetector"
)

// fakeRunner is a lightweight AssessmentRunner for tests.
type fakeRunner struct {
	check       CheckName
	delay       time.Duration
	issues      []Issue
	returnError error
	skipReason  string
}

func (f *fakeRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	// Simulate work and honor context cancellation/timeout
	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	if f.returnError != nil {
		return nil, f.returnError
	}
	if f.skipReason != "" {
		return skipped(f.check, f.skipReason), nil
	}
	return &AssessmentResult{
		Check:         f.check,
		Success:       true,
		ExecutionTime: f.delay,
		Issues:        append([]Issue(nil), f.issues...),
	}, nil
}

func (f *fakeRunner) GetCheck() CheckName { return f.check }

// fixture is an icon repository laid out in a temp dir
type fixture struct {
	t    *testing.T
	root string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, root: t.TempDir()}
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	p := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o644))
}

func (f *fixture) mkdir(rel string) {
	f.t.Helper()
	require.NoError(f.t, os.MkdirAll(f.path(rel), 0o755))
}

func (f *fixture) png(rel string, w, h int) {
	f.t.Helper()
	p := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	out, err := os.Create(p)
	require.NoError(f.t, err)
	defer func() { _ = out.Close() }()
	require.NoError(f.t, png.Encode(out, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func (f *fixture) symlink(target, rel string) {
	f.t.Helper()
	p := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(f.t, os.Symlink(target, p))
}

// baseline writes the inputs of a clean, empty repository: empty manifests
// and catalogs, empty trees and a build script that strips everything
func (f *fixture) baseline() *fixture {
	f.write("tests-ignore.yml", "")
	f.write("vendor/matomo/searchengine-and-social-list/SearchEngines.yml", "")
	f.write("vendor/matomo/searchengine-and-social-list/Socials.yml", "")
	f.write("build-package.sh", "#!/bin/sh\nrm -rf src/ tests-ignore.yml build-package.sh\n")
	f.mkdir("src")
	f.mkdir("dist")
	return f
}

// workspace returns a workspace over the fixture with the default config,
// no CI variables and an empty static classifier
func (f *fixture) workspace(mutate ...func(*config.Config)) *Workspace {
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	ws := NewWorkspace(f.root, cfg)
	ws.Classifier = devicedetector.StaticClassifier{Categories: devicedetector.Categories{}}
	return ws
}

// assessWith runs one runner and fails the test on a runner error
func assessWith(t *testing.T, r AssessmentRunner, ws *Workspace) *AssessmentResult {
	t.Helper()
	res, err := r.Assess(context.Background(), ws)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func countSeverity(issues []Issue, sev IssueSeverity) int {
	n := 0
	for _, is := range issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}
