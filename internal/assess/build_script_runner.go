package assess

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fulmenhq/iconcheck/pkg/ignore"
	"github.com/fulmenhq/iconcheck/pkg/logger"
)

// removePattern matches recursive removals in the packaging script. It is a
// heuristic: any other deletion idiom is invisible to the check.
var removePattern = regexp.MustCompile(`(?m)(?:^|[;&|]|\s)rm\s+-(?:rf|fr|r)\s+([^;&|#\n]+)`)

// BuildScriptRunner verifies the packaging script strips every development
// file from the shipped artifact
type BuildScriptRunner struct{}

// NewBuildScriptRunner creates a new build script runner
func NewBuildScriptRunner() *BuildScriptRunner {
	return &BuildScriptRunner{}
}

// GetCheck returns the check name
func (r *BuildScriptRunner) GetCheck() CheckName { return CheckBuildScript }

// Assess flags every file or empty directory that is neither allowed, nor
// removed by the script, nor the top-level readme.
func (r *BuildScriptRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	scriptPath := ws.Path(ws.Config.BuildScript)
	script, err := os.ReadFile(scriptPath) // #nosec G304 -- configured build script
	if err != nil {
		return nil, fmt.Errorf("failed to read build script: %w", err)
	}

	allowed, err := ignore.NewMatcher(ws.Root, ws.Config.AllowedDirs)
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("allowed patterns: %s", strings.Join(allowed.Patterns(), " ")))

	deleted := expandRemovals(ws.Root, ParseRemovals(string(script)))
	logger.Debug(fmt.Sprintf("build script removes %d paths", len(deleted)))

	readme := path.Clean(filepath.ToSlash(ws.Config.Readme))
	scriptRel := ws.rel(scriptPath)

	var issues []Issue
	err = filepath.WalkDir(ws.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == ws.Root {
			return nil
		}
		rel := ws.rel(p)
		isDir := d.IsDir()

		if allowed.Match(rel, isDir) || coveredBy(rel, deleted) {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if rel == readme {
			return nil
		}
		if isDir {
			entries, err := os.ReadDir(p)
			if err != nil {
				return err
			}
			if len(entries) > 0 {
				return nil
			}
		}
		issues = append(issues, newIssue(r.GetCheck(), SeverityError, rel,
			"%s is not removed by %s", rel, scriptRel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk repository: %w", err)
	}

	return &AssessmentResult{
		Check:         r.GetCheck(),
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

// ParseRemovals extracts the path arguments of "rm -r" style commands.
// Backslash-newline continuations are joined first.
func ParseRemovals(script string) []string {
	script = strings.ReplaceAll(script, "\r\n", "\n")
	script = strings.ReplaceAll(script, "\\\n", " ")

	var out []string
	for _, m := range removePattern.FindAllStringSubmatch(script, -1) {
		for _, arg := range strings.Fields(m[1]) {
			arg = strings.Trim(arg, `"'`)
			if arg == "" || arg == `\` || strings.HasPrefix(arg, "-") {
				continue
			}
			out = append(out, arg)
		}
	}
	return out
}

// expandRemovals globs each removal argument against the repository and
// returns the sorted, repository-relative matches. Arguments that use shell
// variables, leave the repository or are not valid patterns are skipped.
// As in the shell, wildcards never match a leading dot.
func expandRemovals(root string, args []string) []string {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	for _, arg := range args {
		if strings.ContainsAny(arg, "$`") || path.IsAbs(arg) {
			logger.Debug(fmt.Sprintf("ignoring removal argument %q", arg))
			continue
		}
		pattern := path.Clean(strings.TrimPrefix(arg, "./"))
		if pattern == "." || pattern == ".." || strings.HasPrefix(pattern, "../") {
			continue
		}
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			logger.Warn(fmt.Sprintf("ignoring removal argument %q: %v", arg, err))
			continue
		}
		for _, m := range matches {
			if !dotfilesNamed(pattern, m) {
				continue
			}
			seen[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// dotfilesNamed reports whether every hidden segment of match is spelled
// out by a pattern segment that itself starts with a dot
func dotfilesNamed(pattern, match string) bool {
	patSegs := strings.Split(pattern, "/")
	recursive := strings.Contains(pattern, "**")
	for i, seg := range strings.Split(match, "/") {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		if !recursive {
			if i >= len(patSegs) || !strings.HasPrefix(patSegs[i], ".") {
				return false
			}
			continue
		}
		named := false
		for _, ps := range patSegs {
			if !strings.HasPrefix(ps, ".") {
				continue
			}
			if ok, _ := doublestar.Match(ps, seg); ok {
				named = true
				break
			}
		}
		if !named {
			return false
		}
	}
	return true
}

// coveredBy reports whether rel equals or lies below one of the removed
// paths, comparing whole path segments
func coveredBy(rel string, removed []string) bool {
	for _, d := range removed {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}

func init() {
	RegisterAssessmentRunner(CheckBuildScript, NewBuildScriptRunner())
}
