package icons

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Patterns relative to a tree root
const (
	// AllIcons matches every recognised icon inside a category directory
	AllIcons = "*/**/*.{svg,png,gif,jpg,ico}"
	// CompiledIcons matches every compiled icon
	CompiledIcons = "*/**/*.png"
	// Everything matches every entry below the root
	Everything = "**"
)

// Tree is a directory of categorised icons inside a repository
type Tree struct {
	root string // repository root on disk
	dir  string // tree directory relative to root, slash separated
}

// NewTree returns the tree at dir (relative to root)
func NewTree(root, dir string) *Tree {
	return &Tree{root: root, dir: path.Clean(filepath.ToSlash(dir))}
}

// Dir is the repository-relative directory of the tree
func (t *Tree) Dir() string { return t.dir }

// Abs returns the on-disk path of a tree-relative slash path
func (t *Tree) Abs(rel string) string {
	return filepath.Join(t.root, filepath.FromSlash(t.dir), filepath.FromSlash(rel))
}

// Exists reports whether the tree directory exists
func (t *Tree) Exists() bool {
	info, err := os.Stat(t.Abs(""))
	return err == nil && info.IsDir()
}

// Find returns the assets whose tree-relative path matches pattern, in
// lexical order. Symlinks are reported but never followed; a missing tree
// yields no assets.
func (t *Tree) Find(pattern string) ([]Asset, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	base := t.Abs("")
	var assets []Asset
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == base && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if p == base || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ok, _ := doublestar.Match(pattern, rel); !ok {
			return nil
		}
		assets = append(assets, newAsset(t.dir, rel, p, d.Type()&fs.ModeSymlink != 0))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", t.dir, err)
	}
	return assets, nil
}

// FindIcon looks for dir/stem.<format> for every recognised format and
// returns the first regular file (symlinks are resolved).
func (t *Tree) FindIcon(dir, stem string) (string, bool) {
	for _, ext := range Formats {
		rel := path.Join(dir, stem+"."+ext)
		if info, err := os.Stat(t.Abs(rel)); err == nil && !info.IsDir() {
			return path.Join(t.dir, rel), true
		}
	}
	return "", false
}

// IconsIn lists the recognised icons directly inside a category directory
func (t *Tree) IconsIn(dir string) ([]Asset, error) {
	return t.Find(path.Join(dir, "*.{"+strings.Join(Formats, ",")+"}"))
}
