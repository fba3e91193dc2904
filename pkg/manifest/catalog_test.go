package manifest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEntry_CanonicalDomain(t *testing.T) {
	tests := []struct {
		name string
		urls []string
		want string
		ok   bool
	}{
		{"first plain url", []string{"example.com", "www.example.com"}, "example.com", true},
		{"skips templates", []string{"{}.google.com", "google.com"}, "google.com", true},
		{"skips paths", []string{"example.org/search", "search.example.org"}, "search.example.org", true},
		{"keeps port", []string{"localhost:8080"}, "localhost:8080", true},
		{"nothing usable", []string{"{}.example.com", "example.com/x"}, "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CatalogEntry{Name: "x", URLs: tt.urls}.CanonicalDomain()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCatalog_SearchEngines(t *testing.T) {
	p := writeFile(t, t.TempDir(), "SearchEngines.yml", `
Google:
  -
    urls:
      - "{}.google.com"
      - google.com
    params: [q]
  -
    urls: [google.de]
Example:
  - urls: [example.com]
`)
	c, err := LoadCatalog(p, CatalogSearchEngines)
	require.NoError(t, err)
	require.Len(t, c.Entries, 2)

	assert.Equal(t, "Example", c.Entries[0].Name)
	assert.Equal(t, []string{"{}.google.com", "google.com"}, c.Entries[1].URLs, "only the first definition counts")

	domains := c.Domains()
	assert.Contains(t, domains, "google.com")
	assert.Contains(t, domains, "example.com")
	assert.NotContains(t, domains, "google.de")
}

func TestLoadCatalog_Socials(t *testing.T) {
	p := writeFile(t, t.TempDir(), "Socials.yml", `
Facebook:
  - facebook.com
  - fb.me
Solo: solo.example
`)
	c, err := LoadCatalog(p, CatalogSocials)
	require.NoError(t, err)
	require.Len(t, c.Entries, 2)
	assert.Equal(t, []string{"facebook.com", "fb.me"}, c.Entries[0].URLs)
	assert.Equal(t, []string{"solo.example"}, c.Entries[1].URLs)
}

func TestLoadCatalog_JSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "Socials.json", `{"Mastodon": ["mastodon.social"]}`)
	c, err := LoadCatalog(p, CatalogSocials)
	require.NoError(t, err)
	require.Len(t, c.Entries, 1)
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCatalog(filepath.Join(dir, "missing.yml"), CatalogSocials)
	assert.True(t, errors.Is(err, ErrManifestNotFound))

	wrongShape := writeFile(t, dir, "bad.yml", "Google:\n  urls: [google.com]\n")
	_, err = LoadCatalog(wrongShape, CatalogSearchEngines)
	assert.True(t, errors.Is(err, ErrMalformed))

	nonString := writeFile(t, dir, "bad2.yml", "Site:\n  - {a: b}\n")
	_, err = LoadCatalog(nonString, CatalogSocials)
	assert.True(t, errors.Is(err, ErrMalformed))

	ok := writeFile(t, dir, "ok.yml", "Site: [a.com]\n")
	_, err = LoadCatalog(ok, CatalogKind("other"))
	assert.Error(t, err)
}

func TestLoadCatalog_EmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "Socials.yml", "")
	c, err := LoadCatalog(p, CatalogSocials)
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}
