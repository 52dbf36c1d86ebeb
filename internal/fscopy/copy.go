// Package fscopy provides the copy primitives used when a file or subtree
// is passed through without transcoding: a metadata-preserving file copy
// and a symlink-preserving recursive tree copy.
package fscopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst byte-for-byte, preserving the source's
// permission bits and modification time. dst is truncated if it exists.
func CopyFile(src, dst string) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %q: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %q -> %q: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", dst, err)
	}

	// O_CREATE is subject to the umask, so re-apply the source mode.
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %q: %w", dst, err)
	}
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return fmt.Errorf("chtimes %q: %w", dst, err)
	}
	return nil
}

// CopyTree recursively copies the directory src to dst. src may itself be
// a symlink to a directory. Symlinks inside the tree are recreated as
// symlinks rather than followed, so dangling links are copied without
// error. Regular files are copied with [CopyFile]; directory permissions
// and modification times are preserved.
func CopyTree(src, dst string) error {
	// Stat, not Lstat: a symlink handed in as the root is followed and its
	// target copied, the same way listing the path would follow it. Only
	// links inside the tree are preserved as links.
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %q: %w", src, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%q is not a directory", src)
	}

	if err := os.MkdirAll(dst, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("mkdir %q: %w", dst, err)
	}
	// MkdirAll is subject to the umask, so re-apply the source mode.
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %q: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			if err := CopyTree(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	// Set the directory timestamp last so child writes don't disturb it.
	if err := os.Chtimes(dst, fi.ModTime(), fi.ModTime()); err != nil {
		return fmt.Errorf("chtimes %q: %w", dst, err)
	}
	return nil
}

// copySymlink recreates the link at dst pointing to src's target. The
// target is never resolved, so dangling links copy cleanly.
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("readlink %q: %w", src, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("symlink %q -> %q: %w", dst, target, err)
	}
	return nil
}
