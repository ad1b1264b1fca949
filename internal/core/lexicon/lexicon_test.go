package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMembership(t *testing.T) {
	set := Default()

	assert.True(t, set.IsUnit("cups"))
	assert.True(t, set.IsUnit("TBSP"))
	assert.False(t, set.IsUnit("flour"))

	assert.True(t, set.IsDescriptor("Large"))
	assert.True(t, set.IsDescriptor("extra-virgin"))
	assert.False(t, set.IsDescriptor("egg"))

	assert.Contains(t, set.Tools(), "baking sheet")
	assert.Equal(t, "bake", set.PrimaryMethods()[0])
	assert.Equal(t, "chop", set.OtherMethods()[0])
}

func TestExtend(t *testing.T) {
	set, err := Extend([]byte(`
units:
  - Gram
  - grams
  - cup
tools:
  - Dutch Oven
other_methods:
  - fold
`))
	require.NoError(t, err)

	assert.True(t, set.IsUnit("gram"))
	assert.True(t, set.IsUnit("GRAMS"))
	tools := set.Tools()
	assert.Equal(t, "dutch oven", tools[len(tools)-1])
	others := set.OtherMethods()
	assert.Equal(t, "fold", others[len(others)-1])

	// cup already exists and must not be duplicated
	count := 0
	for _, u := range set.Units() {
		if u == "cup" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// the built-in set is untouched
	assert.False(t, Default().IsUnit("gram"))
}

func TestDefaultIsReadOnly(t *testing.T) {
	tools := Default().Tools()
	tools[0] = "blowtorch"
	methods := Default().PrimaryMethods()
	methods[0] = "microwave"
	units := Default().Units()
	units[0] = "bucket"

	assert.Equal(t, "oven", Default().Tools()[0])
	assert.Equal(t, "bake", Default().PrimaryMethods()[0])
	assert.NotContains(t, Default().Units(), "bucket")
	assert.True(t, Default().IsUnit("teaspoon"))
	assert.False(t, Default().IsUnit("bucket"))
}

func TestExtendDoesNotShareDefaults(t *testing.T) {
	set, err := Extend([]byte("tools:\n  - wok\n"))
	require.NoError(t, err)

	tools := set.Tools()
	tools[0] = "blowtorch"
	assert.Equal(t, "oven", set.Tools()[0])
	assert.Equal(t, "oven", Default().Tools()[0])
}

func TestZeroSetIsEmpty(t *testing.T) {
	var set Set
	assert.False(t, set.IsUnit("cup"))
	assert.False(t, set.IsDescriptor("large"))
	assert.Empty(t, set.Tools())
	assert.Empty(t, set.Descriptors())
}

func TestExtendInvalidYAML(t *testing.T) {
	_, err := Extend([]byte("units: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("descriptors:\n  - ripe\n"), 0644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, set.IsDescriptor("ripe"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
