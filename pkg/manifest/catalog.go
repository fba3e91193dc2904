package manifest

import (
	"fmt"
	"net/url"
	"strings"
)

// CatalogKind distinguishes the two remote catalog layouts
type CatalogKind string

const (
	// CatalogSearchEngines maps a name to a list of definitions, each with a "urls" list
	CatalogSearchEngines CatalogKind = "searchEngines"
	// CatalogSocials maps a name straight to a list of URLs
	CatalogSocials CatalogKind = "socials"
)

// templatePlaceholder marks a URL template slot in the upstream lists
const templatePlaceholder = "{}"

// CatalogEntry is a search engine or social site with its candidate URLs
type CatalogEntry struct {
	Name string
	URLs []string
}

// CanonicalDomain returns the network location of the first candidate URL
// that has neither a template placeholder nor a path component.
func (e CatalogEntry) CanonicalDomain() (string, bool) {
	for _, u := range e.URLs {
		u = strings.TrimSpace(u)
		if u == "" || strings.Contains(u, templatePlaceholder) || strings.Contains(u, "/") {
			continue
		}
		parsed, err := url.Parse("http://" + u)
		if err != nil || parsed.Host == "" {
			continue
		}
		return parsed.Host, true
	}
	return "", false
}

// Catalog is an ordered list of entries loaded from one catalog file
type Catalog struct {
	Kind    CatalogKind
	Path    string
	Entries []CatalogEntry
}

// Domains returns the set of canonical domains of all entries
func (c *Catalog) Domains() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Entries))
	for _, e := range c.Entries {
		if d, ok := e.CanonicalDomain(); ok {
			out[d] = struct{}{}
		}
	}
	return out
}

// LoadCatalog reads a search engine or social site catalog
func LoadCatalog(path string, kind CatalogKind) (*Catalog, error) {
	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := decode(path, data, &doc); err != nil {
		return nil, err
	}

	c := &Catalog{Kind: kind, Path: path}
	for _, name := range sortedKeys(doc) {
		var urls []string
		switch kind {
		case CatalogSearchEngines:
			urls, err = searchEngineURLs(doc[name])
		case CatalogSocials:
			urls, err = stringList(doc[name])
		default:
			return nil, fmt.Errorf("unknown catalog kind %q", kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: entry %q: %v", ErrMalformed, path, name, err)
		}
		c.Entries = append(c.Entries, CatalogEntry{Name: name, URLs: urls})
	}
	return c, nil
}

// searchEngineURLs takes the urls of the first definition of a search engine
func searchEngineURLs(v interface{}) ([]string, error) {
	defs, ok := v.([]interface{})
	if !ok || len(defs) == 0 {
		return nil, fmt.Errorf("expected a non-empty list of definitions")
	}
	def, ok := defs[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected the first definition to be a mapping")
	}
	raw, ok := def["urls"]
	if !ok {
		return nil, fmt.Errorf("first definition has no urls")
	}
	return stringList(raw)
}

// stringList accepts a list of scalars or a single scalar
func stringList(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string url, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a list of urls, got %T", v)
	}
}
