package files

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/therootcompany/xz"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/fskit/paths"
)

// archiveSuffixes are the extensions Unzip and UnzipDir act on.
var archiveSuffixes = []string{
	".7z", ".zip", ".tar",
	".tar.gz", ".tgz", ".gz",
	".tar.xz", ".txz", ".xz",
	".tar.bz2", ".tbz2", ".bz2",
}

// IsArchive reports whether the path names a supported archive type.
func IsArchive(path string) bool {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// CheckZip reports whether an archive file (.zip or .7z) exists and is
// readable. A corrupt or truncated archive is deleted on sight, so a false
// answer means "not there anymore" either way.
func CheckZip(path string) bool {
	p, err := abs(path)
	if err != nil {
		return false
	}
	var open func() error
	switch {
	case strings.HasSuffix(p, ".7z"):
		open = func() error {
			r, err := sevenzip.OpenReader(p)
			if err != nil {
				return err
			}
			return r.Close()
		}
	case strings.HasSuffix(p, ".zip"):
		open = func() error {
			r, err := zip.OpenReader(p)
			if err != nil {
				return err
			}
			return r.Close()
		}
	default:
		return false
	}
	if err := open(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = os.Remove(p)
		}
		return false
	}
	return true
}

// Unzip extracts an archive into the directory containing it. Supported
// formats: .zip, .7z, .tar and its gz/xz/bz2 variants, and bare .gz/.xz/.bz2
// single-file compression. With remove, the archive is deleted after a
// successful extraction.
func Unzip(path string, remove bool) error {
	p, err := abs(path)
	if err != nil {
		return err
	}
	if !exists(p) {
		return notFound(p)
	}
	dest := paths.Parent(p, Getwd())
	switch {
	case strings.HasSuffix(p, ".zip"):
		err = extractZip(p, dest)
	case strings.HasSuffix(p, ".7z"):
		err = extract7z(p, dest)
	case strings.HasSuffix(p, ".tar"):
		err = withArchiveReader(p, dest, extractTar)
	case strings.HasSuffix(p, ".tar.gz"), strings.HasSuffix(p, ".tgz"):
		err = withArchiveReader(p, dest, viaGzip(extractTar))
	case strings.HasSuffix(p, ".tar.xz"), strings.HasSuffix(p, ".txz"):
		err = withArchiveReader(p, dest, viaXz(extractTar))
	case strings.HasSuffix(p, ".tar.bz2"), strings.HasSuffix(p, ".tbz2"):
		err = withArchiveReader(p, dest, viaBzip2(extractTar))
	case strings.HasSuffix(p, ".gz"):
		err = withArchiveReader(p, strings.TrimSuffix(p, ".gz"), viaGzip(writeOut))
	case strings.HasSuffix(p, ".xz"):
		err = withArchiveReader(p, strings.TrimSuffix(p, ".xz"), viaXz(writeOut))
	case strings.HasSuffix(p, ".bz2"):
		err = withArchiveReader(p, strings.TrimSuffix(p, ".bz2"), viaBzip2(writeOut))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedArchive, p)
	}
	if err != nil {
		return err
	}
	if remove {
		return os.Remove(p)
	}
	return nil
}

// UnzipDir extracts every archive directly inside a directory, deleting each
// archive once extracted, and repeats until a pass extracts nothing; archives
// that were packed inside other archives get picked up by later passes.
// Within a pass, up to jobs extractions run concurrently (jobs <= 0 means no
// limit). Without strict, individual failures are skipped so everything
// extractable gets extracted; with strict the first failure stops the run.
// Returns the number of archives extracted.
func UnzipDir(path string, strict bool, jobs int) (int, error) {
	p, err := abs(path)
	if err != nil {
		return 0, err
	}
	if !exists(p) {
		return 0, notFound(p)
	}
	var total int64
	for {
		names, err := ListFiles(p)
		if err != nil {
			return int(total), err
		}
		var archives []string
		for _, name := range names {
			if IsArchive(name) {
				archives = append(archives, name)
			}
		}
		var passCount int64
		g := new(errgroup.Group)
		if jobs > 0 {
			g.SetLimit(jobs)
		}
		for _, archive := range archives {
			archive := archive // per-iteration copy; required under the go 1.21 directive
			g.Go(func() error {
				if err := Unzip(archive, true); err != nil {
					if strict {
						return err
					}
					return nil
				}
				atomic.AddInt64(&passCount, 1)
				return nil
			})
		}
		err = g.Wait()
		total += passCount
		if err != nil {
			return int(total), err
		}
		if passCount == 0 {
			return int(total), nil
		}
	}
}

// extractFunc consumes a decompressed stream; dest is either a directory to
// unpack into (tar) or the exact output file (single-file compression).
type extractFunc func(dest string, r io.Reader) error

// withArchiveReader opens the archive file and hands its stream to fn.
func withArchiveReader(path, dest string, fn extractFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(dest, f)
}

func viaGzip(fn extractFunc) extractFunc {
	return func(dest string, r io.Reader) error {
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return err
		}
		defer gzr.Close()
		return fn(dest, gzr)
	}
}

func viaXz(fn extractFunc) extractFunc {
	return func(dest string, r io.Reader) error {
		xzr, err := xz.NewReader(r, xz.DefaultDictMax)
		if err != nil {
			return err
		}
		return fn(dest, xzr)
	}
}

func viaBzip2(fn extractFunc) extractFunc {
	return func(dest string, r io.Reader) error {
		return fn(dest, bzip2.NewReader(r))
	}
}

// writeOut spills a decompressed single-file stream to dest.
func writeOut(dest string, r io.Reader) error {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// member resolves an archive member name inside dest, rejecting absolute
// names and names that climb out of dest.
func member(dest, name string) (string, error) {
	name = paths.ForSlash(name)
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("archive member escapes destination: %s", name)
	}
	return dest + "/" + name, nil
}

// extractTar unpacks a tar stream into the directory dest, preserving file
// modes.
func extractTar(dest string, r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		target, err := member(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(paths.Parent(target, ""), 0o755); err != nil {
				return err
			}
			if err := writeMember(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Links and specials are skipped.
		}
	}
}

// extractZip unpacks a zip archive into the directory dest.
func extractZip(path, dest string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()
	for _, f := range zr.File {
		if err := extractMember(dest, f.Name, f.FileInfo(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// extract7z unpacks a 7-zip archive into the directory dest.
func extract7z(path, dest string) error {
	zr, err := sevenzip.OpenReader(path)
	if err != nil {
		return err
	}
	defer zr.Close()
	for _, f := range zr.File {
		if err := extractMember(dest, f.Name, f.FileInfo(), f.Open); err != nil {
			return err
		}
	}
	return nil
}

// extractMember writes one archive member, creating parent directories.
func extractMember(dest, name string, fi fs.FileInfo, open func() (io.ReadCloser, error)) error {
	target, err := member(dest, name)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return os.MkdirAll(target, fi.Mode().Perm())
	}
	if err := os.MkdirAll(paths.Parent(target, ""), 0o755); err != nil {
		return err
	}
	rc, err := open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return writeMember(target, rc, fi.Mode().Perm())
}

// writeMember spills one member's contents to target with the given mode.
func writeMember(target string, r io.Reader, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
