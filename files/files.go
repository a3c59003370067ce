// Package files is the filesystem operation layer: convenience wrappers over
// OS primitives (copy, move, delete, list, log, archive extraction) that run
// unmodified on Windows and Unix. Every path accepted is run through the
// paths engine first, so all results are absolute and forward-slashed
// regardless of the slash style or root form of the input.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/blackwell-systems/fskit/paths"
	"github.com/blackwell-systems/fskit/stamp"
)

// Sentinel errors for the operation layer. Not-found conditions wrap
// fs.ErrNotExist, so errors.Is(err, fs.ErrNotExist) works throughout.
var (
	ErrExists             = errors.New("destination already exists")
	ErrSamePath           = errors.New("source and destination are the same")
	ErrDestIsFile         = errors.New("destination exists as a file")
	ErrNotDir             = errors.New("not a directory")
	ErrIsDir              = errors.New("destination already exists as a directory")
	ErrNoPath             = errors.New("no usable path")
	ErrUnsupportedArchive = errors.New("unsupported archive format")
)

// Getwd returns the current working directory with forward slashes. If the
// working directory has gone away entirely it returns "", which downstream
// operations treat as "no path".
func Getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return paths.ForSlash(wd)
}

// abs resolves path against the process working directory.
func abs(path string) (string, error) {
	p := paths.Resolve(path, Getwd())
	if p == "" {
		return "", fmt.Errorf("%w: %q", ErrNoPath, path)
	}
	return p, nil
}

// Cd changes the working directory, creating the destination first if it does
// not exist. It returns the new working directory, forward-slashed.
func Cd(path string) (string, error) {
	p, err := abs(path)
	if err != nil {
		return "", err
	}
	if _, err := MakeDirs(p); err != nil {
		return "", err
	}
	if err := os.Chdir(p); err != nil {
		return "", err
	}
	return p, nil
}

// MakeDirs creates every directory named by dirs, which may be strings or
// arbitrarily nested sequences of strings. It keeps going past individual
// failures so as many directories as possible get created, and returns the
// paths that failed along with the accumulated errors.
func MakeDirs(dirs ...any) ([]string, error) {
	flat, err := paths.Flatten(dirs...)
	if err != nil {
		return nil, err
	}
	var failed []string
	var merr *multierror.Error
	for _, dir := range flat {
		p, err := abs(dir)
		if err != nil {
			failed = append(failed, dir)
			merr = multierror.Append(merr, err)
			continue
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			failed = append(failed, p)
			merr = multierror.Append(merr, err)
		}
	}
	return failed, merr.ErrorOrNil()
}

// MakeFile creates a new file containing msg, creating parent directories as
// needed. An existing file is an error unless overwrite is set; an existing
// directory is always an error. Returns the resolved path of the new file.
func MakeFile(path, msg string, overwrite bool) (string, error) {
	p, err := abs(path)
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(p); err == nil {
		if fi.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrIsDir, p)
		}
		if !overwrite {
			return "", fmt.Errorf("%w: %s", ErrExists, p)
		}
		if err := os.Remove(p); err != nil {
			return "", err
		}
	}
	if _, err := MakeDirs(paths.Parent(p, Getwd())); err != nil {
		return "", err
	}
	if err := os.WriteFile(p, []byte(msg), 0o644); err != nil {
		return "", err
	}
	return p, nil
}

// Delete removes a file, or a directory. Without force a directory is only
// pruned of empty subdirectories (see RmDir); with force the whole tree goes.
func Delete(path string, force bool) error {
	p, err := abs(path)
	if err != nil {
		return err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		if force {
			return os.RemoveAll(p)
		}
		_, err := RmDir(p, true)
		return err
	}
	return os.Remove(p)
}

// Rename gives path a new basename, keeping it in the same directory, and
// returns the new path.
func Rename(path, name string) (string, error) {
	p, err := abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	newPath := paths.Parent(p, Getwd()) + "/" + name
	if err := os.Rename(p, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// RmDir recursively deletes empty directories beneath path, deepest first,
// and returns how many were removed. With delRoot, path itself is removed
// once emptied; if that happens to be the working directory, RmDir steps up
// a level first.
func RmDir(path string, delRoot bool) (int, error) {
	p, err := abs(path)
	if err != nil {
		return 0, err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDir, p)
	}
	count := 0
	children, err := ListDirs(p)
	if err != nil {
		return count, err
	}
	for _, child := range children {
		n, err := RmDir(child, true)
		count += n
		if err != nil {
			return count, err
		}
	}
	if !delRoot {
		return count, nil
	}
	remaining, err := ListDir(p)
	if err != nil {
		return count, err
	}
	if len(remaining) > 0 {
		return count, nil
	}
	if p == Getwd() {
		// We're inside the directory we're about to delete.
		if _, err := Cd(".."); err != nil {
			return count, err
		}
	}
	if err := os.Remove(p); err != nil {
		return count, err
	}
	return count + 1, nil
}

// listDir is the shared directory lister behind ListDir/ListDirs/ListFiles.
func listDir(path string, dirs, files bool) ([]string, error) {
	p, err := abs(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		child := p + "/" + e.Name()
		if e.IsDir() {
			if dirs {
				out = append(out, child)
			}
		} else if files {
			out = append(out, child)
		}
	}
	return out, nil
}

// ListDir lists everything directly inside a directory as full paths.
func ListDir(path string) ([]string, error) {
	return listDir(path, true, true)
}

// ListDirs lists the directories directly inside a directory as full paths.
func ListDirs(path string) ([]string, error) {
	return listDir(path, true, false)
}

// ListFiles lists the non-directories directly inside a directory as full
// paths.
func ListFiles(path string) ([]string, error) {
	return listDir(path, false, true)
}

// Glob returns the full paths under dir matching a doublestar pattern, which
// may use ** to cross directory boundaries.
func Glob(dir, pattern string) ([]string, error) {
	p, err := abs(dir)
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(p), pattern)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = p + "/" + m
	}
	return out, nil
}

// LogOptions controls the line prefix written by Log.
type LogOptions struct {
	Timestamp bool          // prefix each line with a timestamp
	Stamp     stamp.Options // how to render it
}

// DefaultLogOptions produces lines like
// "[2022-08-19 13:24:54 -06:00]  message".
var DefaultLogOptions = LogOptions{Timestamp: true, Stamp: stamp.Default}

// Log appends msg as one line to the file at path, creating the file and its
// parent directory if needed.
func Log(path, msg string, opts LogOptions) error {
	p, err := abs(path)
	if err != nil {
		return err
	}
	if _, err := MakeDirs(paths.Parent(p, Getwd())); err != nil {
		return err
	}
	prefix := ""
	if opts.Timestamp {
		prefix = stamp.Now(opts.Stamp) + "  "
	}
	f, err := os.OpenFile(p, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(prefix + msg + "\n")
	return err
}

// basename returns the final segment of a forward-slash path.
func basename(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// exists reports whether something is at p.
func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// notFound decorates a stat error with the path it was about.
func notFound(p string) error {
	return fmt.Errorf("not found: %s: %w", p, fs.ErrNotExist)
}
