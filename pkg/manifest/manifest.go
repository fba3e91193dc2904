// Package manifest loads the exception manifest and the remote catalogs
// (search engines, social sites) consumed by the consistency checks.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned when a required manifest file is absent
var ErrManifestNotFound = errors.New("manifest not found")

// ErrMalformed is returned when a manifest cannot be decoded or violates its schema
var ErrMalformed = errors.New("malformed manifest")

// readManifest reads a required manifest file
func readManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest paths come from repository configuration
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	return data, nil
}

// decode unmarshals data into v, picking the decoder from the file extension.
// YAML is the default since the upstream lists ship as .yml.
func decode(path string, data []byte, v interface{}) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, v)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		err = dec.Decode(v)
	default:
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return nil
}

// sortedKeys returns the keys of a string-keyed map in order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
