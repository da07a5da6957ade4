package fileserver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, root, virtual string) *Listing {
	t.Helper()
	resolved, err := Resolve(root, virtual)
	require.NoError(t, err)
	listing, err := List(resolved)
	require.NoError(t, err)
	return listing
}

func TestListDirectoriesFirstThenCaseInsensitive(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "b.txt", "b")
	writeFile(t, root, "a.txt", "a")
	require.NoError(t, os.Mkdir(filepath.Join(root, "A"), 0o755))

	listing := listDir(t, root, "")

	names := make([]string, 0, len(listing.Entries))
	for _, e := range listing.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"A", "a.txt", "b.txt"}, names)
	assert.Equal(t, 1, listing.NumDirs)
	assert.Equal(t, 2, listing.NumFiles)
}

func TestListEntryFields(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "docs/hello.txt", "hello")

	listing := listDir(t, root, "docs")

	require.Len(t, listing.Entries, 1)
	e := listing.Entries[0]
	assert.Equal(t, "hello.txt", e.Name)
	assert.Equal(t, "docs/hello.txt", e.Path, "entry paths are always slash-separated")
	assert.False(t, e.IsDir)
	assert.EqualValues(t, 5, e.Size)
	assert.NotZero(t, e.LastModified)
}

func TestListDirectoryEntryHasZeroSize(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "sub/inner.txt", "0123456789")

	listing := listDir(t, root, "")

	require.Len(t, listing.Entries, 1)
	assert.True(t, listing.Entries[0].IsDir)
	assert.Zero(t, listing.Entries[0].Size)
}

func TestListParentMarker(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "a/b/c.txt", "x")

	rootListing := listDir(t, root, "")
	assert.False(t, rootListing.HasParent)

	one := listDir(t, root, "a")
	assert.True(t, one.HasParent)
	assert.Equal(t, "", one.ParentPath)

	two := listDir(t, root, "a/b")
	assert.True(t, two.HasParent)
	assert.Equal(t, "a", two.ParentPath)
}

func TestListOnFileIsNotFound(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "plain.txt", "x")

	resolved, err := Resolve(root, "plain.txt")
	require.NoError(t, err)

	_, err = List(resolved)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListVanishedDirectory(t *testing.T) {
	root := newRoot(t)
	dir := filepath.Join(root, "gone")
	require.NoError(t, os.Mkdir(dir, 0o755))

	resolved, err := Resolve(root, "gone")
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))

	_, err = List(resolved)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListSymlinkedChildrenUseTargetMetadata(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	root := newRoot(t)
	writeFile(t, root, "real/big.bin", "0123456789abcdef")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "dirlink")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "big.bin"), filepath.Join(root, "filelink")))

	listing := listDir(t, root, "")

	byName := map[string]Entry{}
	for _, e := range listing.Entries {
		byName[e.Name] = e
	}

	require.Contains(t, byName, "dirlink")
	assert.True(t, byName["dirlink"].IsDir, "symlink to a directory lists as a directory")
	assert.Zero(t, byName["dirlink"].Size)

	require.Contains(t, byName, "filelink")
	assert.False(t, byName["filelink"].IsDir)
	assert.EqualValues(t, 16, byName["filelink"].Size, "size is the target's, not the link's")
}

func TestListSkipsDanglingAndEscapingSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}
	base := newRoot(t)
	root := filepath.Join(base, "share")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, base, "secret.txt", "top secret")
	writeFile(t, root, "kept.txt", "x")

	require.NoError(t, os.Symlink(filepath.Join(base, "secret.txt"), filepath.Join(root, "escape")))
	require.NoError(t, os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")))

	listing := listDir(t, root, "")

	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "kept.txt", listing.Entries[0].Name)
}

func TestEntryJSONShape(t *testing.T) {
	root := newRoot(t)
	writeFile(t, root, "hello.txt", "hello")

	listing := listDir(t, root, "")
	b, err := json.Marshal(listing.Entries)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "hello.txt", decoded[0]["name"])
	assert.Equal(t, "hello.txt", decoded[0]["path"])
	assert.Equal(t, false, decoded[0]["is_dir"])
	assert.EqualValues(t, 5, decoded[0]["size"])
	assert.Contains(t, decoded[0], "last_modified")
}
