package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := gamesCatalog(t)
	_, err := c.AddEntry(nil, `Quote "and" <html> & \slash`, `C:\Games\x.exe`, "🚀")
	require.NoError(t, err)
	_, err = c.AddFolder(Path{"Tools"}, "path")
	require.NoError(t, err)
	_, err = c.AddEntry(Path{"Tools", "path"}, "emoji", "/p", "")
	require.NoError(t, err)

	data, err := Save(c)
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.True(t, c.Equal(loaded), "round trip changed the tree:\n%s", data)
}

func TestSaveLoad_PreservesOrder(t *testing.T) {
	c := New()
	for _, name := range []string{"zeta", "alpha", "Mid"} {
		_, err := c.AddFolder(nil, name)
		require.NoError(t, err)
	}

	data, err := Save(c)
	require.NoError(t, err)
	loaded, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "Mid"}, names(loaded.Root()))
}

func TestSave_DocumentShape(t *testing.T) {
	c := gamesCatalog(t)

	data, err := Save(c)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	games := doc["Games"].(map[string]any)
	doom := games["Doom"].(map[string]any)
	assert.Equal(t, "/g/doom.bin", doom["path"])
	assert.Equal(t, "🔫", doom["emoji"])
	assert.Equal(t, map[string]any{}, doc["Tools"])
}

func TestSave_Empty(t *testing.T) {
	data, err := Save(New())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Root().Len())
}

func TestLoad_MissingEmojiUsesDefault(t *testing.T) {
	c, err := Load([]byte(`{"Doom": {"path": "/g/doom"}}`))
	require.NoError(t, err)

	doom := mustResolve(t, c, Path{"Doom"})
	assert.True(t, doom.IsEntry())
	assert.Equal(t, DefaultMarker, doom.Marker)
}

func TestLoad_PathChildObjectIsFolder(t *testing.T) {
	c, err := Load([]byte(`{"Dir": {"path": {"x": {"path": "/x"}}}}`))
	require.NoError(t, err)

	dir := mustResolve(t, c, Path{"Dir"})
	assert.True(t, dir.IsFolder())
	assert.True(t, mustResolve(t, c, Path{"Dir", "path", "x"}).IsEntry())
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"a": `},
		{"array top level", `[]`},
		{"scalar top level", `"hello"`},
		{"scalar in folder", `{"a": 1}`},
		{"array in folder", `{"a": []}`},
		{"duplicate sibling", `{"a": {}, "a": {}}`},
		{"empty name", `{"": {}}`},
		{"empty launch path", `{"a": {"path": ""}}`},
		{"non-string emoji", `{"a": {"path": "/x", "emoji": 3}}`},
		{"trailing data", `{} {}`},
		{"empty input", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestCatalog_JSONMarshalerRoundTrip(t *testing.T) {
	c := gamesCatalog(t)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var out Catalog
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, c.Equal(&out))
}

func TestYAML_RoundTrip(t *testing.T) {
	c := gamesCatalog(t)

	data, err := SaveYAML(c)
	require.NoError(t, err)

	loaded, err := LoadYAML(data)
	require.NoError(t, err)
	assert.True(t, c.Equal(loaded), "yaml:\n%s", data)
}

func TestLoadYAML_Corrupt(t *testing.T) {
	_, err := LoadYAML([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrCorruptData)

	_, err = LoadYAML([]byte("a: 1\n"))
	assert.ErrorIs(t, err, ErrCorruptData)

	_, err = LoadYAML([]byte("a:\n  path: \"\"\n"))
	assert.ErrorIs(t, err, ErrCorruptData)

	// a non-string path is not an entry, and a scalar is not a folder
	_, err = LoadYAML([]byte("a:\n  path: 5\n"))
	assert.ErrorIs(t, err, ErrCorruptData)

	_, err = LoadYAML([]byte("a:\n  path: ~\n"))
	assert.ErrorIs(t, err, ErrCorruptData)

	c, err := LoadYAML([]byte("a:\n  path: \"5\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "5", mustResolve(t, c, Path{"a"}).LaunchPath)
}
