package assess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/iconcheck/pkg/config"
)

func TestParseRemovals(t *testing.T) {
	script := `#!/bin/bash
set -e
rm -rf src/ tests-ignore.yml "build-package.sh"
cd dist && rm -r ./*.md # docs
rm -fr -- '*.py' && echo done
rm -f single-file.txt
firm -r nothing
`
	assert.Equal(t, []string{"src/", "tests-ignore.yml", "build-package.sh", "./*.md", "*.py"}, ParseRemovals(script))
}

func TestCoveredBy(t *testing.T) {
	removed := []string{"src", "tests"}
	assert.True(t, coveredBy("src", removed))
	assert.True(t, coveredBy("src/brand/Apple.svg", removed))
	assert.False(t, coveredBy("srcfoo", removed), "partial names never match")
	assert.False(t, coveredBy("tests-ignore.yml", removed))
	assert.False(t, coveredBy("other/src", removed))
}

func TestBuildScriptRunner_Clean(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("README.md", "# icons")
	f.write("src/brand/Apple.svg", "<svg/>")
	f.write("dist/brand/Apple.png", "x")
	f.write("node_modules/svgo/index.js", "")
	f.write("tools/node_modules/x/y.js", "")
	f.write("tools/convert.py", "")
	f.write("build-package.sh", "rm -rf src/ tests-ignore.yml build-package.sh tools/*.py\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	assert.Empty(t, res.Issues)
}

func TestBuildScriptRunner_RoundTrip(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("stray.txt", "left behind")
	f.write("notes/todo.txt", "x")
	f.write("notes/old.py", "x")
	f.mkdir("empty")
	f.write("distribution/readme", "not the dist dir")
	f.write("src-extra/a.svg", "x")
	f.write("build-package.sh", "rm -rf src/ tests-ignore.yml build-package.sh notes/*.py\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	var files []string
	for _, is := range res.Issues {
		assert.Equal(t, SeverityError, is.Severity)
		files = append(files, is.File)
	}
	assert.Equal(t, []string{"distribution/readme", "empty", "notes/todo.txt", "src-extra/a.svg", "stray.txt"}, files)
	assert.Equal(t, "stray.txt is not removed by build-package.sh", res.Issues[4].Message)
}

func TestBuildScriptRunner_IgnoreFileLayer(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("stray.txt", "x")
	f.write(".iconcheckignore", "# local\n.iconcheckignore\nstray.txt\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	assert.Empty(t, res.Issues)
}

func TestBuildScriptRunner_MissingScript(t *testing.T) {
	f := newFixture(t).baseline()
	ws := f.workspace(func(c *config.Config) { c.BuildScript = "missing.sh" })
	_, err := NewBuildScriptRunner().Assess(context.Background(), ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build script")
}

func TestParseRemovals_LineContinuation(t *testing.T) {
	script := "#!/bin/sh\nrm -rf src/ \\\n  tests-ignore.yml \\\n  build-package.sh stray.txt\necho done\n"
	assert.Equal(t, []string{"src/", "tests-ignore.yml", "build-package.sh", "stray.txt"}, ParseRemovals(script))
}

func TestBuildScriptRunner_LineContinuation(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("stray.txt", "x")
	f.write("build-package.sh", "rm -rf src/ \\\n  tests-ignore.yml \\\n  build-package.sh stray.txt\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	assert.Empty(t, res.Issues)
}

func TestBuildScriptRunner_InvalidPatternSkipped(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("stray.txt", "x")
	f.write("build-package.sh", "rm -rf src/ tests-ignore.yml build-package.sh [ stray.txt\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	assert.Empty(t, res.Issues)
}

func TestBuildScriptRunner_WildcardLeavesDotfiles(t *testing.T) {
	f := newFixture(t).baseline()
	f.write(".travis.yml", "language: php")
	f.write("ci.yml", "x")
	f.write("build-package.sh", "rm -rf src/ tests-ignore.yml build-package.sh *.yml\n")

	res := assessWith(t, NewBuildScriptRunner(), f.workspace())
	require.Len(t, res.Issues, 1)
	assert.Equal(t, ".travis.yml", res.Issues[0].File)

	f.write("build-package.sh", "rm -rf src/ tests-ignore.yml build-package.sh *.yml .*.yml\n")
	res = assessWith(t, NewBuildScriptRunner(), f.workspace())
	assert.Empty(t, res.Issues)
}

func TestDotfilesNamed(t *testing.T) {
	tests := []struct {
		pattern, match string
		want           bool
	}{
		{"src", "src", true},
		{"*.yml", "ci.yml", true},
		{"*.yml", ".travis.yml", false},
		{".*", ".travis.yml", true},
		{"src/*", "src/.keep", false},
		{"src/.keep", "src/.keep", true},
		{"**/*.yml", "a/.ci.yml", false},
		{"**/.ci.yml", "a/.ci.yml", true},
		{"**/*.yml", ".github/ci.yml", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dotfilesNamed(tt.pattern, tt.match), "%s vs %s", tt.pattern, tt.match)
	}
}
