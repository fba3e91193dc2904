package manifest

import (
	"fmt"
	"path"
	"strings"

	"github.com/fulmenhq/iconcheck/internal/assets"
	"github.com/fulmenhq/iconcheck/internal/schema"
)

// IgnoreManifest holds the four independent exception lists of a run
type IgnoreManifest struct {
	IgnoredSourceFiles []string                     `yaml:"ignored_source_files" toml:"ignored_source_files" json:"ignored_source_files"`
	NonSquareIcons     []string                     `yaml:"non_square_icons" toml:"non_square_icons" json:"non_square_icons"`
	PlaceholderIcons   map[string]map[string]string `yaml:"placeholder_icons" toml:"placeholder_icons" json:"placeholder_icons"`
	LessImportant      map[string][]string          `yaml:"less_important_device_detector_icons" toml:"less_important_device_detector_icons" json:"less_important_device_detector_icons"`

	ignoredSources map[string]struct{}
	nonSquare      map[string]struct{}
	lessImportant  map[string]map[string]struct{}
}

// Placeholder is the expected fallback icon of a category
type Placeholder struct {
	Category string
	Filename string
	SHA256   string
}

// LoadIgnoreManifest reads, schema-validates and indexes the ignore manifest
func LoadIgnoreManifest(path string) (*IgnoreManifest, error) {
	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	res, err := ValidateIgnoreManifest(path, data)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		first := res.Errors[0]
		return nil, fmt.Errorf("%w: %s: %s: %s (%d schema error(s))", ErrMalformed, path, first.Path, first.Message, len(res.Errors))
	}

	m := &IgnoreManifest{}
	if err := decode(path, data, m); err != nil {
		return nil, err
	}
	m.index()
	return m, nil
}

// ValidateIgnoreManifest checks raw manifest bytes against the embedded schema
func ValidateIgnoreManifest(path string, data []byte) (*schema.Result, error) {
	var doc interface{}
	if err := decode(path, data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		// An empty file is an empty manifest
		doc = map[string]interface{}{}
	}
	res, err := schema.Validate(doc, assets.IgnoreManifestSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", path, err)
	}
	return res, nil
}

func (m *IgnoreManifest) index() {
	m.ignoredSources = make(map[string]struct{}, len(m.IgnoredSourceFiles))
	for _, p := range m.IgnoredSourceFiles {
		m.ignoredSources[normalize(p)] = struct{}{}
	}
	m.nonSquare = make(map[string]struct{}, len(m.NonSquareIcons))
	for _, p := range m.NonSquareIcons {
		m.nonSquare[normalize(p)] = struct{}{}
	}
	m.lessImportant = make(map[string]map[string]struct{}, len(m.LessImportant))
	for icontype, slugs := range m.LessImportant {
		set := make(map[string]struct{}, len(slugs))
		for _, s := range slugs {
			set[s] = struct{}{}
		}
		m.lessImportant[icontype] = set
	}
}

// normalize makes repository-relative paths comparable
func normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// IsIgnoredSource reports whether a source asset is excused from conversion
func (m *IgnoreManifest) IsIgnoredSource(relPath string) bool {
	_, ok := m.ignoredSources[normalize(relPath)]
	return ok
}

// IsNonSquareException reports whether a compiled icon may be non-square
func (m *IgnoreManifest) IsNonSquareException(relPath string) bool {
	_, ok := m.nonSquare[normalize(relPath)]
	return ok
}

// IsLessImportant reports whether a missing device-detector icon is only a warning
func (m *IgnoreManifest) IsLessImportant(icontype, slug string) bool {
	_, ok := m.lessImportant[icontype][slug]
	return ok
}

// Placeholders lists placeholder specs ordered by category and filename
func (m *IgnoreManifest) Placeholders() []Placeholder {
	var out []Placeholder
	for _, category := range sortedKeys(m.PlaceholderIcons) {
		files := m.PlaceholderIcons[category]
		for _, filename := range sortedKeys(files) {
			out = append(out, Placeholder{
				Category: category,
				Filename: filename,
				SHA256:   strings.ToLower(files[filename]),
			})
		}
	}
	return out
}

// PlaceholderStem returns the placeholder file stem of a category, e.g. "xx"
// for searchEngines/xx.png.
func (m *IgnoreManifest) PlaceholderStem(category string) (string, bool) {
	files := m.PlaceholderIcons[category]
	for _, filename := range sortedKeys(files) {
		return strings.TrimSuffix(filename, path.Ext(filename)), true
	}
	return "", false
}
