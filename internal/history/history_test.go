package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.json"), []byte(content), 0644))
}

func TestOpen_InitialisesRepository(t *testing.T) {
	dir := t.TempDir()

	h, err := Open(dir, "catalog.json")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, ".git"))

	commits, err := h.Log(10)
	require.NoError(t, err)
	assert.Empty(t, commits)

	// Reopening must not reinitialise.
	_, err = Open(dir, "catalog.json")
	require.NoError(t, err)
}

func TestCommit_LogAndShow(t *testing.T) {
	dir := t.TempDir()
	h, err := Open(dir, "catalog.json")
	require.NoError(t, err)

	writeDoc(t, dir, "{}\n")
	first, err := h.Commit("add folder Games")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	writeDoc(t, dir, "{\n  \"Games\": {}\n}\n")
	second, err := h.Commit("rename Games")
	require.NoError(t, err)
	require.NotEmpty(t, second)

	commits, err := h.Log(10)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, second, commits[0].Hash)
	assert.Equal(t, "rename Games", commits[0].Message)
	assert.Equal(t, authorName, commits[0].Author)
	assert.Len(t, commits[0].ShortHash(), 7)

	limited, err := h.Log(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	doc, err := h.Show(first)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(doc))

	doc, err = h.Show(commits[1].ShortHash())
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(doc))

	doc, err = h.Show("HEAD")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Games")
}

func TestCommit_CleanTreeIsNoop(t *testing.T) {
	dir := t.TempDir()
	h, err := Open(dir, "catalog.json")
	require.NoError(t, err)

	writeDoc(t, dir, "{}\n")
	_, err = h.Commit("first")
	require.NoError(t, err)

	hash, err := h.Commit("again")
	require.NoError(t, err)
	assert.Empty(t, hash)

	commits, err := h.Log(0)
	require.NoError(t, err)
	assert.Len(t, commits, 1)
}

func TestCommit_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	h, err := Open(dir, "catalog.json")
	require.NoError(t, err)

	writeDoc(t, dir, "{}\n")
	_, err = h.Commit("first")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "exelaunch.log"), []byte("x"), 0644))
	hash, err := h.Commit("log only")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestShow_UnknownRevision(t *testing.T) {
	h, err := Open(t.TempDir(), "catalog.json")
	require.NoError(t, err)

	_, err = h.Show("deadbeef")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	oldDoc := []byte("{\n  \"A\": {},\n  \"B\": {}\n}\n")
	newDoc := []byte("{\n  \"A\": {},\n  \"C\": {}\n}\n")

	res := Diff(oldDoc, newDoc)
	assert.True(t, res.HasChanges())
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, "+1 -1", res.Summary())

	out := res.Unified("a/catalog.json", "b/catalog.json")
	assert.True(t, strings.HasPrefix(out, "--- a/catalog.json\n+++ b/catalog.json\n"))
	assert.Contains(t, out, "-  \"B\": {}\n")
	assert.Contains(t, out, "+  \"C\": {}\n")
	assert.Contains(t, out, "   \"A\": {},\n")
}

func TestDiff_Identical(t *testing.T) {
	res := Diff([]byte("{}\n"), []byte("{}\n"))
	assert.False(t, res.HasChanges())
	assert.Equal(t, "No changes", res.Summary())
	assert.Equal(t, "--- a\n+++ b\n", res.Unified("a", "b"))
}

func TestDiff_CollapsesDistantContext(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		oldLines = append(oldLines, "line")
		newLines = append(newLines, "line")
	}
	newLines[19] = "changed"

	res := Diff([]byte(strings.Join(oldLines, "\n")+"\n"), []byte(strings.Join(newLines, "\n")+"\n"))
	out := res.Unified("a", "b")

	assert.Contains(t, out, "@@ line 17 @@\n")
	context := 0
	for _, l := range strings.Split(out, "\n") {
		if l == " line" {
			context++
		}
	}
	assert.Equal(t, 3, context)
}
