package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frankentokens/model"
)

func TestWriteJSONRegistry(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	reg := model.NewRegistry()
	light := model.NewTokenMap()
	light.Set("--a", "1px")
	dark := model.NewTokenMap()
	dark.Set("--a", "2px")
	reg.Merge("emerald", model.ModeLight, light)
	reg.Merge("emerald", model.ModeDark, dark)

	path, err := store.WriteJSON("franken-themes.json", reg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "franken-themes.json"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
  "emerald": {
    "light": {
      "--a": "1px"
    },
    "dark": {
      "--a": "2px"
    }
  }
}`
	assert.Equal(t, want, string(got))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteJSONEmptyRegistry(t *testing.T) {
	store := New(t.TempDir())

	path, err := store.WriteJSON("out/themes.json", model.NewRegistry())
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestWriteTextOverwrites(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.WriteText("themes.csv", "old content that is longer")
	require.NoError(t, err)
	path, err := store.WriteText("themes.csv", model.CSVHeader)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.CSVHeader, string(got))
}

func TestWriteFailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := New(blocker).WriteText("themes.csv", "x")
	assert.Error(t, err)
}

func TestPathKeepsAbsolute(t *testing.T) {
	store := New("/base")
	assert.Equal(t, "/elsewhere/out.json", store.Path("/elsewhere/out.json"))
	assert.Equal(t, filepath.Join("/base", "out.json"), store.Path("out.json"))
}
