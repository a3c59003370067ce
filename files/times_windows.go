//go:build windows

package files

import (
	"os"
	"syscall"
	"time"
)

// statTimes reads the access and creation times for a path. Windows has no
// inode-change time, so the creation time stands in for it.
func statTimes(path string) (atime, ctime time.Time, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	st, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return fi.ModTime(), fi.ModTime(), nil
	}
	atime = time.Unix(0, st.LastAccessTime.Nanoseconds())
	ctime = time.Unix(0, st.CreationTime.Nanoseconds())
	return atime, ctime, nil
}
