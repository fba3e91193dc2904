package assets

// Registry lists embedded assets available at runtime.
// Update this when adding/removing curated assets.

type AssetInfo struct {
	Family  string // e.g., schema, template
	Name    string // lookup key
	Version string
	Path    string // path relative to the family's embed root
}

const IgnoreManifestSchema = "ignore-manifest-v1.0.0"

var Registry = []AssetInfo{
	{
		Family:  "schema",
		Name:    IgnoreManifestSchema,
		Version: "v1.0.0",
		Path:    "manifest/v1.0.0/ignore-manifest.yaml",
	},
	{
		Family:  "template",
		Name:    "ignore-manifest",
		Version: "v1.0.0",
		Path:    "tests-ignore.yml.tmpl",
	},
}

// Lookup finds a registry entry by name
func Lookup(name string) (AssetInfo, bool) {
	for _, a := range Registry {
		if a.Name == name {
			return a, true
		}
	}
	return AssetInfo{}, false
}
