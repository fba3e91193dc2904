package schema

import (
	"testing"

	"github.com/fulmenhq/iconcheck/internal/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decode(t *testing.T, src string) interface{} {
	t.Helper()
	var doc interface{}
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return doc
}

func TestValidate_IgnoreManifest(t *testing.T) {
	valid := decode(t, `
ignored_source_files:
  - src/flags/un.svg
non_square_icons: []
placeholder_icons:
  brand:
    unk.png: 398a623a3b0b10eba6d1884b0ff1713ee12aeafaa8efaf67b60a4624f4dce48c
less_important_device_detector_icons:
  brand: [Foo]
`)
	res, err := Validate(valid, assets.IgnoreManifestSchema)
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %v", res.Errors)

	invalid := decode(t, `
ignored_source_files: src/flags/un.svg
placeholder_icons:
  brand:
    unk.png: not-a-digest
unknown_section: true
`)
	res, err = Validate(invalid, assets.IgnoreManifestSchema)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.GreaterOrEqual(t, len(res.Errors), 3)
}

func TestValidate_EmptyDocumentIsValid(t *testing.T) {
	res, err := Validate(map[string]interface{}{}, assets.IgnoreManifestSchema)
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestValidate_UnknownSchema(t *testing.T) {
	_, err := Validate(map[string]interface{}{}, "does-not-exist")
	assert.Error(t, err)
}
