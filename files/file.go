package files

import (
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/fskit/paths"
)

// File tracks a file or directory by its resolved path and offers the
// operation layer as methods. Operations that relocate the file (Move,
// Rename) update the tracked path.
type File struct {
	path string
}

// NewFile starts tracking path, resolved against the working directory.
func NewFile(path string) *File {
	return &File{path: paths.Resolve(path, Getwd())}
}

// Path returns the tracked path.
func (f *File) Path() string { return f.path }

func (f *File) String() string { return f.path }

// Exists reports whether the tracked path is currently present.
func (f *File) Exists() bool { return exists(f.path) }

// IsDir reports whether the tracked path is a directory.
func (f *File) IsDir() bool {
	fi, err := os.Stat(f.path)
	return err == nil && fi.IsDir()
}

// IsFile reports whether the tracked path is a non-directory.
func (f *File) IsFile() bool {
	fi, err := os.Stat(f.path)
	return err == nil && !fi.IsDir()
}

// IsRoot reports whether the tracked path is a filesystem root ("/", a drive
// root, or a bare UNC host), i.e. its own parent.
func (f *File) IsRoot() bool {
	return paths.IsRoot(f.path, Getwd())
}

// Name returns the basename, or the path itself for a root.
func (f *File) Name() string {
	if f.IsRoot() {
		return f.path
	}
	return basename(f.path)
}

// Stem returns the name up to the first dot for a file, or the whole name for
// a directory.
func (f *File) Stem() string {
	name := f.Name()
	if f.IsDir() {
		return name
	}
	return strings.SplitN(name, ".", 2)[0]
}

// Suffix returns the final dotted extension of a file, including the dot, or
// "" for a directory.
func (f *File) Suffix() string {
	if f.IsDir() {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// Parts returns the path's segment sequence.
func (f *File) Parts() []string {
	return paths.Split(f.path, Getwd())
}

// Root returns the path's root segment, or "" for a cancelled path.
func (f *File) Root() string {
	parts := f.Parts()
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// Parent returns a File tracking the containing directory. A root is its own
// parent.
func (f *File) Parent() *File {
	return &File{path: paths.Parent(f.path, Getwd())}
}

// Children returns the full paths inside the directory, or nothing if the
// tracked path is not a directory.
func (f *File) Children() []string {
	if !f.IsDir() {
		return nil
	}
	children, err := ListDir(f.path)
	if err != nil {
		return nil
	}
	return children
}

// Size returns the size in bytes, or 0 if the path cannot be stat'd.
func (f *File) Size() int64 {
	fi, err := os.Stat(f.path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// ModTime returns the last modification time.
func (f *File) ModTime() (time.Time, error) {
	fi, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

// AccessTime returns the last access time.
func (f *File) AccessTime() (time.Time, error) {
	at, _, err := statTimes(f.path)
	return at, err
}

// ChangeTime returns the inode change time on Unix, or the creation time on
// Windows.
func (f *File) ChangeTime() (time.Time, error) {
	_, ct, err := statTimes(f.path)
	return ct, err
}

// Copy copies the file or tree into dest without retargeting the handle.
func (f *File) Copy(dest string, overwrite bool) error {
	_, err := Copy(f.path, dest, overwrite)
	return err
}

// Move moves the file or tree into dest and retargets the handle.
func (f *File) Move(dest string, overwrite bool) error {
	newPath, err := Move(f.path, dest, overwrite)
	if err != nil {
		return err
	}
	f.path = newPath
	return nil
}

// Rename gives the file a new basename and retargets the handle.
func (f *File) Rename(name string) error {
	newPath, err := Rename(f.path, name)
	if err != nil {
		return err
	}
	f.path = newPath
	return nil
}

// Delete removes the file, or prunes/removes the directory (see Delete).
func (f *File) Delete(force bool) error {
	return Delete(f.path, force)
}
