package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs an isolated command tree and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TRAVIS", "")
	t.Setenv("TRAVIS_PULL_REQUEST", "")

	root := newRootCommand()
	registerSubcommands(root)
	var buf, logs bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeRepoFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// cleanRepo lays out an icon repository every check accepts
func cleanRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeRepoFile(t, root, "tests-ignore.yml", "")
	writeRepoFile(t, root, "vendor/matomo/searchengine-and-social-list/SearchEngines.yml", "")
	writeRepoFile(t, root, "vendor/matomo/searchengine-and-social-list/Socials.yml", "")
	writeRepoFile(t, root, "build-package.sh", "rm -rf src tests-ignore.yml build-package.sh\n")
	writeRepoFile(t, root, "README.md", "# icons\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))
	return root
}
