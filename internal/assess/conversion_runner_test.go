package assess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/iconcheck/pkg/config"
)

func TestConversionRunner_MissingCompiled(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("src/brand/Apple.svg", "<svg/>")
	f.png("dist/brand/Apple.png", 64, 64)
	f.write("src/os/WIN.png", "x")
	f.write("src/flags/un.svg", "<svg/>")
	f.write("tests-ignore.yml", "ignored_source_files:\n  - src/flags/un.svg\n")

	res := assessWith(t, NewConversionRunner(), f.workspace())
	require.Len(t, res.Issues, 1, "exactly one uncompiled file")
	assert.Equal(t, SeverityError, res.Issues[0].Severity)
	assert.Equal(t, "dist/os/WIN.png", res.Issues[0].File)
	assert.Equal(t, "dist/os/WIN.png is missing (From src/os/WIN.png)", res.Issues[0].Message)
}

func TestConversionRunner_NestedAndCustomDist(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("src/flags/sub/de.gif", "x")
	f.png("build/flags/sub/de.png", 4, 3)

	res := assessWith(t, NewConversionRunner(), f.workspace(func(c *config.Config) { c.DistDir = "build" }))
	assert.Empty(t, res.Issues)
}

func TestConversionRunner_SkippedOnPullRequest(t *testing.T) {
	f := newFixture(t).baseline()
	f.write("src/os/WIN.png", "x")

	res := assessWith(t, NewConversionRunner(), f.workspace(func(c *config.Config) { c.CI.PullRequest = "42" }))
	assert.Equal(t, "pull request build", res.SkipReason)
	assert.Empty(t, res.Issues)

	res = assessWith(t, NewConversionRunner(), f.workspace(func(c *config.Config) { c.CI.PullRequest = "false" }))
	assert.Empty(t, res.SkipReason)
	assert.Len(t, res.Issues, 1)
}

func TestConversionRunner_ManifestRequired(t *testing.T) {
	f := newFixture(t)
	_, err := NewConversionRunner().Assess(context.Background(), f.workspace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ignore manifest")
}
