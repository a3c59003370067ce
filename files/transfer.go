package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/fskit/paths"
)

// prepareTransfer is the validation shared by Copy and Move: both resolve
// their arguments, require the source to exist, refuse to transfer something
// into itself, refuse a destination that exists as a file, and create the
// destination directory.
func prepareTransfer(src, dest string) (string, string, error) {
	s, err := abs(src)
	if err != nil {
		return "", "", err
	}
	d, err := abs(dest)
	if err != nil {
		return "", "", err
	}
	if !exists(s) {
		return "", "", notFound(s)
	}
	if s == d {
		return "", "", fmt.Errorf("%w: %s", ErrSamePath, s)
	}
	if fi, err := os.Stat(d); err == nil && !fi.IsDir() {
		return "", "", fmt.Errorf("%w: %s", ErrDestIsFile, d)
	}
	if _, err := MakeDirs(d); err != nil {
		return "", "", err
	}
	return s, d, nil
}

// Copy copies a file or a whole directory tree into the directory dest,
// creating dest if needed, and returns the path of the copy. For a file,
// overwrite replaces an existing destination file. For a directory, overwrite
// merges into an existing destination tree, replacing files that collide.
func Copy(src, dest string, overwrite bool) (string, error) {
	s, d, err := prepareTransfer(src, dest)
	if err != nil {
		return "", err
	}
	newPath := d + "/" + basename(s)
	fi, err := os.Stat(s)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		if exists(newPath) && !overwrite {
			return "", fmt.Errorf("%w: %s", ErrExists, newPath)
		}
		return newPath, copyFile(s, newPath)
	}
	if exists(newPath) && !overwrite {
		return "", fmt.Errorf("%w: %s", ErrExists, newPath)
	}
	return newPath, copyTree(s, newPath)
}

// Move moves a file or directory tree into the directory dest and returns the
// new path. It renames when it can and falls back to copy-then-delete when
// the destination is on another device or the trees must be merged.
func Move(src, dest string, overwrite bool) (string, error) {
	s, d, err := prepareTransfer(src, dest)
	if err != nil {
		return "", err
	}
	newPath := d + "/" + basename(s)
	fi, err := os.Stat(s)
	if err != nil {
		return "", err
	}
	newExists := exists(newPath)
	if newExists && !overwrite {
		return "", fmt.Errorf("%w: %s", ErrExists, newPath)
	}
	if !fi.IsDir() {
		if newExists {
			if err := os.Remove(newPath); err != nil {
				return "", err
			}
		}
		if err := os.Rename(s, newPath); err == nil {
			return newPath, nil
		}
		// Cross-device: copy and delete by hand.
		if err := copyFile(s, newPath); err != nil {
			return "", err
		}
		return newPath, os.Remove(s)
	}
	if !newExists {
		if err := os.Rename(s, newPath); err == nil {
			return newPath, nil
		}
	}
	if err := copyTree(s, newPath); err != nil {
		return "", err
	}
	return newPath, os.RemoveAll(s)
}

// copyFile copies one regular file, preserving its mode and
// modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}

// copyTree copies the directory tree rooted at src into dst, creating dst.
// Existing directories are merged; colliding files are replaced.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := dst
		if rel != "." {
			target = dst + "/" + paths.ForSlash(rel)
		}
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}
