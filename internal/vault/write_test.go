package vault

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires symlinks")
	}
}

// vaultFileCount counts all entries under the root, dot files included, to
// assert that rejected writes left no trace.
func vaultFileCount(t *testing.T, root *Root) int {
	t.Helper()
	count := 0
	err := filepath.Walk(root.Path(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestWrite_CreateThenUpdate(t *testing.T) {
	root := newTestRoot(t)

	result, err := root.Write("notes/idea.md", []byte("first"))
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "notes/idea.md", result.Path)
	assert.Equal(t, 5, result.Bytes)

	result, err = root.Write("notes/idea.md", []byte("second"))
	require.NoError(t, err)
	assert.False(t, result.Created)

	content, err := root.ReadFile("notes/idea.md")
	require.NoError(t, err)
	assert.Equal(t, "second", content)
}

func TestWrite_RejectionLeavesNoFile(t *testing.T) {
	root := newTestRoot(t)

	for _, path := range []string{
		"../escape.md",
		".git/hooks.md",
		"script.sh",
		"notes/.hidden.md",
	} {
		_, err := root.Write(path, []byte("payload"))
		require.Error(t, err, path)
		assert.True(t, IsValidationError(err), path)
	}
	assert.Zero(t, vaultFileCount(t, root))
}

func TestWrite_SizeBoundary(t *testing.T) {
	root := newTestRoot(t)

	atLimit := make([]byte, MaxWriteSize)
	result, err := root.Write("exact.md", atLimit)
	require.NoError(t, err)
	assert.Equal(t, MaxWriteSize, result.Bytes)

	overLimit := make([]byte, MaxWriteSize+1)
	_, err = root.Write("over.md", overLimit)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// The rejection happened before any filesystem call.
	_, statErr := os.Stat(filepath.Join(root.Path(), "over.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_PathLimitBoundary(t *testing.T) {
	root := newTestRoot(t)

	_, err := root.Write(longPath(t, MaxPathLength), []byte("ok"))
	require.NoError(t, err)

	_, err = root.Write(longPath(t, MaxPathLength+1), []byte("no"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestWrite_SymlinkTargetInsideVault(t *testing.T) {
	requireSymlinks(t)
	root := newTestRoot(t)

	_, err := root.Write("real.md", []byte("original"))
	require.NoError(t, err)
	require.NoError(t, os.Symlink(
		filepath.Join(root.Path(), "real.md"),
		filepath.Join(root.Path(), "alias.md"),
	))

	_, err = root.Write("alias.md", []byte("overwritten"))
	require.Error(t, err)
	assert.True(t, IsSymlinkError(err))

	// The link's target was never mutated.
	content, err := root.ReadFile("real.md")
	require.NoError(t, err)
	assert.Equal(t, "original", content)
}

func TestWrite_SymlinkTargetOutsideVault(t *testing.T) {
	requireSymlinks(t)
	root := newTestRoot(t)

	outside := filepath.Join(t.TempDir(), "victim.md")
	require.NoError(t, os.WriteFile(outside, []byte("untouched"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(root.Path(), "note.md")))

	_, err := root.Write("note.md", []byte("attack"))
	require.Error(t, err)
	assert.True(t, IsSymlinkError(err))

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(data))
}

func TestWrite_SymlinkedParentDirectory(t *testing.T) {
	requireSymlinks(t)
	root := newTestRoot(t)

	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root.Path(), "linked")))

	// Plain filename, but an ancestor is a symlink out of the vault.
	_, err := root.Write("linked/escape.md", []byte("attack"))
	require.Error(t, err)
	assert.True(t, IsSymlinkError(err))

	_, statErr := os.Stat(filepath.Join(outside, "escape.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWrite_SymlinkedAncestorDeep(t *testing.T) {
	requireSymlinks(t)
	root := newTestRoot(t)

	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(root.Path(), "linked")))

	_, err := root.Write("linked/a/b/escape.md", []byte("attack"))
	require.Error(t, err)
	assert.True(t, IsSymlinkError(err))

	escaped := false
	_ = filepath.Walk(outside, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(path, "escape.md") {
			escaped = true
		}
		return nil
	})
	assert.False(t, escaped)
}

func TestWrite_RoundTripAppearsInListing(t *testing.T) {
	root := newTestRoot(t)

	_, err := root.Write("notes/trip.md", []byte("round trip"))
	require.NoError(t, err)

	entries, err := root.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "notes/trip.md", entries[0].Path)

	content, err := root.ReadFile("notes/trip.md")
	require.NoError(t, err)
	assert.Equal(t, "round trip", content)
}
