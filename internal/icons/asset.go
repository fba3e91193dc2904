// Package icons models the icon asset tree: assets parsed once into
// category/slug/extension, their compiled counterparts and companions.
package icons

import (
	"path"
	"regexp"
	"strings"
)

// Categories of the source tree
const (
	CategoryBrand         = "brand"
	CategoryBrowsers      = "browsers"
	CategoryOS            = "os"
	CategoryDevices       = "devices"
	CategoryPlugins       = "plugins"
	CategorySEO           = "SEO"
	CategoryFlags         = "flags"
	CategorySearchEngines = "searchEngines"
	CategorySocials       = "socials"
)

// Formats are the recognised icon file extensions, in lookup order
var Formats = []string{"svg", "png", "gif", "jpg", "ico"}

// RasterFormats are the formats whose pixel size can be measured
var RasterFormats = []string{"png", "gif", "jpg", "ico"}

// CompiledFormat is the single raster format of the distribution tree
const CompiledFormat = "png"

// Companion file suffixes
const (
	SourceSuffix = ".source"
	TodoSuffix   = ".todo"
)

// placeholderMarker in a filename flags an intentional placeholder
const placeholderMarker = "UNK"

var lossyFormats = map[string]bool{"jpg": true, "gif": true, "ico": true}

// IsLossy reports whether ext (without dot) is a lossy format
func IsLossy(ext string) bool {
	return lossyFormats[strings.ToLower(ext)]
}

// Asset is an icon file discovered under a tree
type Asset struct {
	// Path is repository-relative with forward slashes, e.g. "src/brand/Apple.png"
	Path string
	// Rel is the path below the tree root, e.g. "brand/Apple.png"
	Rel      string
	Category string
	Slug     string
	// Ext is the extension without the dot, e.g. "png"
	Ext     string
	Symlink bool

	abs string
}

// newAsset parses a tree-relative slash path
func newAsset(treeDir, rel, abs string, symlink bool) Asset {
	base := path.Base(rel)
	ext := path.Ext(base)
	category := ""
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		category = rel[:i]
	}
	return Asset{
		Path:     path.Join(treeDir, rel),
		Rel:      rel,
		Category: category,
		Slug:     strings.TrimSuffix(base, ext),
		Ext:      strings.TrimPrefix(ext, "."),
		Symlink:  symlink,
		abs:      abs,
	}
}

// AbsPath is the on-disk location of the asset
func (a Asset) AbsPath() string { return a.abs }

// Filename is the base name including the extension
func (a Asset) Filename() string { return path.Base(a.Rel) }

// CompiledPath returns the repository-relative path of the compiled
// counterpart under distDir, e.g. "dist/brand/Apple.png".
func (a Asset) CompiledPath(distDir string) string {
	return path.Join(distDir, path.Dir(a.Rel), a.Slug+"."+CompiledFormat)
}

// AttributionPath is the on-disk location of the ".source" companion
func (a Asset) AttributionPath() string { return a.abs + SourceSuffix }

// TodoPath is the on-disk location of the ".todo" marker
func (a Asset) TodoPath() string { return a.abs + TodoSuffix }

// IsPlaceholderName reports whether the filename marks an intentional placeholder
func (a Asset) IsPlaceholderName() bool {
	return strings.Contains(a.Filename(), placeholderMarker)
}

// IsLossy reports whether the asset is stored in a lossy format
func (a Asset) IsLossy() bool { return IsLossy(a.Ext) }

var slugDisallowed = regexp.MustCompile(`(?i)[^a-z0-9_-]+`)

// Slugify turns a display name into a filesystem-safe slug: every run of
// characters outside [a-z0-9_-] becomes a single underscore.
func Slugify(name string) string {
	return slugDisallowed.ReplaceAllString(name, "_")
}
