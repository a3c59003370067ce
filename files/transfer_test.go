package files

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/fskit/paths"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(paths.Parent(path, ""), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// ---------------------------------------------------------------------------
// Copy
// ---------------------------------------------------------------------------

func TestCopyFile(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	src := tmp + "/src.txt"
	writeFile(t, src, "payload")

	// Destination directory is created on demand.
	got, err := Copy(src, tmp+"/out", false)
	require.NoError(t, err)
	require.Equal(t, tmp+"/out/src.txt", got)
	require.Equal(t, "payload", readFile(t, got))
	require.FileExists(t, src)
}

func TestCopyFileRefusesExisting(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	src := tmp + "/src.txt"
	writeFile(t, src, "new")
	writeFile(t, tmp+"/out/src.txt", "old")

	_, err := Copy(src, tmp+"/out", false)
	require.ErrorIs(t, err, ErrExists)
	require.Equal(t, "old", readFile(t, tmp+"/out/src.txt"))

	_, err = Copy(src, tmp+"/out", true)
	require.NoError(t, err)
	require.Equal(t, "new", readFile(t, tmp+"/out/src.txt"))
}

func TestCopyTree(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	writeFile(t, tmp+"/proj/a.txt", "a")
	writeFile(t, tmp+"/proj/sub/b.txt", "b")

	got, err := Copy(tmp+"/proj", tmp+"/backup", false)
	require.NoError(t, err)
	require.Equal(t, tmp+"/backup/proj", got)
	require.Equal(t, "a", readFile(t, got+"/a.txt"))
	require.Equal(t, "b", readFile(t, got+"/sub/b.txt"))
}

func TestCopyTreeMerges(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	writeFile(t, tmp+"/proj/a.txt", "new-a")
	writeFile(t, tmp+"/backup/proj/a.txt", "old-a")
	writeFile(t, tmp+"/backup/proj/keep.txt", "kept")

	_, err := Copy(tmp+"/proj", tmp+"/backup", false)
	require.ErrorIs(t, err, ErrExists)

	_, err = Copy(tmp+"/proj", tmp+"/backup", true)
	require.NoError(t, err)
	require.Equal(t, "new-a", readFile(t, tmp+"/backup/proj/a.txt"))
	require.Equal(t, "kept", readFile(t, tmp+"/backup/proj/keep.txt"))
}

func TestCopyMissingSource(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	_, err := Copy(tmp+"/ghost", tmp+"/out", false)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyIntoItself(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	_, err := Copy(tmp, tmp, false)
	require.ErrorIs(t, err, ErrSamePath)
}

func TestCopyDestIsFile(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	src := tmp + "/src.txt"
	writeFile(t, src, "x")
	writeFile(t, tmp+"/wall", "solid")

	_, err := Copy(src, tmp+"/wall", false)
	require.ErrorIs(t, err, ErrDestIsFile)
}

// ---------------------------------------------------------------------------
// Move
// ---------------------------------------------------------------------------

func TestMoveFile(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	src := tmp + "/src.txt"
	writeFile(t, src, "payload")

	got, err := Move(src, tmp+"/out", false)
	require.NoError(t, err)
	require.Equal(t, tmp+"/out/src.txt", got)
	require.Equal(t, "payload", readFile(t, got))
	require.NoFileExists(t, src)
}

func TestMoveFileOverwrite(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	src := tmp + "/src.txt"
	writeFile(t, src, "new")
	writeFile(t, tmp+"/out/src.txt", "old")

	_, err := Move(src, tmp+"/out", false)
	require.ErrorIs(t, err, ErrExists)

	_, err = Move(src, tmp+"/out", true)
	require.NoError(t, err)
	require.Equal(t, "new", readFile(t, tmp+"/out/src.txt"))
	require.NoFileExists(t, src)
}

func TestMoveTree(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	writeFile(t, tmp+"/proj/sub/b.txt", "b")

	got, err := Move(tmp+"/proj", tmp+"/archive", false)
	require.NoError(t, err)
	require.Equal(t, tmp+"/archive/proj", got)
	require.Equal(t, "b", readFile(t, got+"/sub/b.txt"))
	require.NoDirExists(t, tmp+"/proj")
}

func TestMoveTreeMergeOverwrite(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	writeFile(t, tmp+"/proj/a.txt", "new-a")
	writeFile(t, tmp+"/archive/proj/keep.txt", "kept")

	_, err := Move(tmp+"/proj", tmp+"/archive", true)
	require.NoError(t, err)
	require.Equal(t, "new-a", readFile(t, tmp+"/archive/proj/a.txt"))
	require.Equal(t, "kept", readFile(t, tmp+"/archive/proj/keep.txt"))
	require.NoDirExists(t, tmp+"/proj")
}
