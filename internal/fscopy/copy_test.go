package fscopy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile_ContentAndMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))
	mtime := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
	assert.True(t, fi.ModTime().Equal(mtime), "modification time must be preserved")
}

func TestCopyFile_TruncatesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("something much longer"), 0o644))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	assert.Error(t, err)
}

func TestCopyTree_Nested(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a", "mid.txt"), []byte("mid"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a", "b", "leaf.txt"), []byte("leaf"), 0o600))

	require.NoError(t, CopyTree(src, dst))

	for _, rel := range []string{"top.txt", "a/mid.txt", "a/b/leaf.txt"} {
		_, err := os.Stat(filepath.Join(dst, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	fi, err := os.Stat(filepath.Join(dst, "a", "b", "leaf.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestCopyTree_PreservesSymlinks(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.WriteFile(filepath.Join(src, "real.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink("real.txt", filepath.Join(src, "link.txt")))

	require.NoError(t, CopyTree(src, dst))

	target, err := os.Readlink(filepath.Join(dst, "link.txt"))
	require.NoError(t, err)
	assert.Equal(t, "real.txt", target, "symlink must be recreated, not followed")
}

func TestCopyTree_DanglingSymlink(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.Symlink("does-not-exist", filepath.Join(src, "dangling")))

	require.NoError(t, CopyTree(src, dst), "dangling symlinks must copy without error")

	target, err := os.Readlink(filepath.Join(dst, "dangling"))
	require.NoError(t, err)
	assert.Equal(t, "does-not-exist", target)
}

func TestCopyTree_SymlinkRootFollowed(t *testing.T) {
	base := t.TempDir()
	real := filepath.Join(base, "real")
	require.NoError(t, os.MkdirAll(real, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "inner.txt"), []byte("x"), 0o644))

	link := filepath.Join(base, "link")
	require.NoError(t, os.Symlink(real, link))

	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, CopyTree(link, dst), "a symlink root must be followed, not rejected")

	fi, err := os.Lstat(dst)
	require.NoError(t, err)
	assert.True(t, fi.IsDir(), "destination must be a real directory")

	_, err = os.Stat(filepath.Join(dst, "inner.txt"))
	assert.NoError(t, err)
}

func TestCopyTree_PreservesDirPermissions(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.Chmod(src, 0o775))

	dst := filepath.Join(t.TempDir(), "out")
	require.NoError(t, CopyTree(src, dst))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o775), fi.Mode().Perm(), "umask must not leak into copied directory modes")
}

func TestCopyTree_SourceNotADirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	assert.Error(t, CopyTree(src, filepath.Join(dir, "out")))
}
