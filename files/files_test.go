package files

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/fskit/paths"
)

// chdir mirrors testing.T.Chdir (Go 1.24+), which is unavailable on the
// Go 1.21 toolchain this module is built with.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// ---------------------------------------------------------------------------
// Getwd / Cd
// ---------------------------------------------------------------------------

func TestGetwdForwardSlashes(t *testing.T) {
	wd := Getwd()
	require.NotEmpty(t, wd)
	require.NotContains(t, wd, `\`)
}

func TestCdCreatesDestination(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	got, err := Cd("brand/new/depths")
	require.NoError(t, err)
	require.Equal(t, Getwd(), got)
	require.DirExists(t, paths.ForSlash(tmp)+"/brand/new/depths")
}

// ---------------------------------------------------------------------------
// MakeDirs / MakeFile
// ---------------------------------------------------------------------------

func TestMakeDirsNestedGroupings(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())

	failed, err := MakeDirs(tmp+"/a", []string{tmp + "/b", tmp + "/c/d"}, []any{[]any{tmp + "/e"}})
	require.NoError(t, err)
	require.Empty(t, failed)
	for _, d := range []string{"/a", "/b", "/c/d", "/e"} {
		require.DirExists(t, tmp+d)
	}
}

func TestMakeDirsCollectsFailures(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	blocker := tmp + "/blocker"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// One impossible (under a file), one fine.
	failed, err := MakeDirs(blocker+"/sub", tmp+"/ok")
	require.Error(t, err)
	require.Equal(t, []string{blocker + "/sub"}, failed)
	require.DirExists(t, tmp+"/ok")
}

func TestMakeDirsRejectsBadShapes(t *testing.T) {
	_, err := MakeDirs("fine", 7)
	require.ErrorIs(t, err, paths.ErrInvalidInput)
}

func TestMakeFile(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	target := tmp + "/deep/down/note.txt"

	got, err := MakeFile(target, "hello", false)
	require.NoError(t, err)
	require.Equal(t, target, got)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	// Existing file refuses without overwrite.
	_, err = MakeFile(target, "again", false)
	require.ErrorIs(t, err, ErrExists)

	// Overwrite replaces the contents.
	_, err = MakeFile(target, "again", true)
	require.NoError(t, err)
	data, _ = os.ReadFile(target)
	require.Equal(t, "again", string(data))

	// A directory in the way is always an error.
	_, err = MakeFile(tmp+"/deep", "", true)
	require.ErrorIs(t, err, ErrIsDir)
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func seedTree(t *testing.T) string {
	t.Helper()
	tmp := paths.ForSlash(t.TempDir())
	require.NoError(t, os.MkdirAll(tmp+"/sub/inner", 0o755))
	require.NoError(t, os.WriteFile(tmp+"/top.txt", []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(tmp+"/sub/nested.txt", []byte("nested"), 0o644))
	return tmp
}

func TestListDirVariants(t *testing.T) {
	tmp := seedTree(t)

	all, err := ListDir(tmp)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{tmp + "/sub", tmp + "/top.txt"}, all)

	dirs, err := ListDirs(tmp)
	require.NoError(t, err)
	require.Equal(t, []string{tmp + "/sub"}, dirs)

	files, err := ListFiles(tmp)
	require.NoError(t, err)
	require.Equal(t, []string{tmp + "/top.txt"}, files)
}

func TestListDirMissing(t *testing.T) {
	_, err := ListDir(paths.ForSlash(t.TempDir()) + "/nope")
	require.Error(t, err)
}

func TestGlob(t *testing.T) {
	tmp := seedTree(t)

	got, err := Glob(tmp, "**/*.txt")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{tmp + "/top.txt", tmp + "/sub/nested.txt"}, got)
}

// ---------------------------------------------------------------------------
// Log
// ---------------------------------------------------------------------------

func TestLogStampedLine(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	logFile := tmp + "/logs/run.log"

	require.NoError(t, Log(logFile, "first", DefaultLogOptions))
	require.NoError(t, Log(logFile, "second", DefaultLogOptions))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Regexp(t, `(?m)^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{2}:\d{2}\]  first$`, string(data))
	require.Regexp(t, `(?m)\]  second$`, string(data))
}

func TestLogWithoutStamp(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	logFile := tmp + "/plain.log"

	require.NoError(t, Log(logFile, "bare message", LogOptions{}))
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Equal(t, "bare message\n", string(data))
}

// ---------------------------------------------------------------------------
// Rename / Delete / RmDir
// ---------------------------------------------------------------------------

func TestRename(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	old := tmp + "/old.txt"
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))

	got, err := Rename(old, "new.txt")
	require.NoError(t, err)
	require.Equal(t, tmp+"/new.txt", got)
	require.NoFileExists(t, old)
	require.FileExists(t, got)
}

func TestRenameMissing(t *testing.T) {
	_, err := Rename(paths.ForSlash(t.TempDir())+"/ghost", "x")
	require.Error(t, err)
}

func TestRmDirCountsEmpties(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	require.NoError(t, os.MkdirAll(tmp+"/a/b/c", 0o755))
	require.NoError(t, os.MkdirAll(tmp+"/keep", 0o755))
	require.NoError(t, os.WriteFile(tmp+"/keep/file.txt", []byte("x"), 0o644))

	// a/b/c, a/b, a are empty chains; keep/ holds a file.
	count, err := RmDir(tmp, false)
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoDirExists(t, tmp+"/a")
	require.DirExists(t, tmp+"/keep")
}

func TestRmDirDelRoot(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	target := tmp + "/victim"
	require.NoError(t, os.MkdirAll(target+"/empty", 0o755))

	count, err := RmDir(target, true)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.NoDirExists(t, target)
}

func TestRmDirStepsOutOfCwd(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	target := tmp + "/here"
	require.NoError(t, os.MkdirAll(target, 0o755))
	chdir(t, target)

	count, err := RmDir(".", true)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NoDirExists(t, target)
}

func TestRmDirOnFile(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())
	file := tmp + "/f.txt"
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := RmDir(file, true)
	require.ErrorIs(t, err, ErrNotDir)
}

func TestDelete(t *testing.T) {
	tmp := paths.ForSlash(t.TempDir())

	file := tmp + "/f.txt"
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.NoError(t, Delete(file, false))
	require.NoFileExists(t, file)

	// Without force, only empty subtrees go.
	require.NoError(t, os.MkdirAll(tmp+"/d/empty", 0o755))
	require.NoError(t, os.WriteFile(tmp+"/d/keep.txt", []byte("x"), 0o644))
	require.NoError(t, Delete(tmp+"/d", false))
	require.DirExists(t, tmp+"/d")
	require.NoDirExists(t, tmp+"/d/empty")

	// With force, everything goes.
	require.NoError(t, Delete(tmp+"/d", true))
	require.NoDirExists(t, tmp+"/d")
}

func TestDeleteMissing(t *testing.T) {
	require.Error(t, Delete(paths.ForSlash(t.TempDir())+"/ghost", false))
}
