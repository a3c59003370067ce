// Package paths is a pure path normalization and decomposition engine for
// scripts that must run unmodified on Windows and Unix. Every path is
// canonicalized to forward slashes and classified into one of four root forms:
// the Unix root "/", a Windows drive root "X:/", a UNC network root "//host",
// or no root at all (a relative path).
//
// The package performs no I/O. Functions that need to know "where am I"
// (resolving "." or ".." or prefixing a relative path) take the working
// directory as an explicit cwd argument; callers typically pass
// files.Getwd(). Passing "" is fine when the inputs contain no dot segments.
//
// Known limitation, inherited deliberately: paths containing more than one
// "." or ".." segment, or containing one anywhere but at the very end of the
// string, are unsupported and may produce undefined results.
package paths

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned when a path fragment is not a string or a
// (possibly nested) sequence of strings.
var ErrInvalidInput = errors.New("paths: part must be a string or a sequence of strings")

// ForSlash replaces every backslash in path with a forward slash. It is the
// first step of every other operation in this package, so Windows-style input
// is accepted everywhere.
func ForSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// CheckDrive reports whether token is a Windows drive root ("C:", "d:\",
// "E:/") and returns its canonical three-character form "X:/" with the letter
// uppercased. It returns "" for anything else, including forms with an extra
// slash like "E://".
func CheckDrive(token string) string {
	drive := strings.ToUpper(ForSlash(token))
	if len(drive) != 2 && len(drive) != 3 {
		return ""
	}
	if drive[0] < 'A' || drive[0] > 'Z' || drive[1] != ':' {
		return ""
	}
	if len(drive) == 3 {
		if drive[2] != '/' {
			return ""
		}
		return drive
	}
	return drive + "/"
}

// Split decomposes a path string into its ordered segments. The first segment,
// if any, encodes the root: "/" for Unix, "X:/" for a Windows drive, "//host"
// for a UNC location. A relative path has no root segment. A trailing "."
// is dropped and a trailing ".." ascends one level; a bare "folder/.." cancels
// to nil, the sentinel for "no path". Empty input also yields nil.
//
// cwd is consulted only when path is exactly "." or "..".
func Split(path, cwd string) []string {
	if path == "" {
		return nil
	}
	path = ForSlash(path)

	// Root is idempotent under a trailing dot segment.
	if path == "/" || path == "/." || path == "/.." {
		return []string{"/"}
	}

	parts := strings.Split(path, "/")
	uncPrefix := false
	switch {
	case path == ".":
		path = ForSlash(cwd)
	case path == "..":
		path = dirname(ForSlash(cwd))
	case parts[len(parts)-1] == ".":
		// "path/." is just "path".
		path = path[:len(path)-2]
	case parts[len(parts)-1] == "..":
		if len(parts) == 2 {
			// "folder/..": nothing left to ascend past.
			return nil
		}
		if strings.HasPrefix(path, "//") {
			// Hold the UNC marker aside so dirname doesn't eat it.
			path = strings.TrimLeft(path, "/")
			uncPrefix = true
		}
		path = dirname(dirname(path))
		if uncPrefix {
			path = "//" + path
		}
	}
	parts = strings.Split(path, "/")

	if parts[0] == "" {
		parts[0] = "/"
	}
	if drive := CheckDrive(parts[0]); drive != "" {
		parts[0] = drive
	}
	if strings.HasPrefix(path, "//") {
		// UNC: the first three raw components collapse into "//host".
		if len(parts) < 3 {
			return []string{"/"}
		}
		result := []string{"//" + parts[2]}
		return append(result, parts[3:]...)
	}
	if len(parts) == 2 && parts[1] == "" {
		// Bare root with a trailing slash, e.g. "C:/".
		return parts[:1]
	}
	return parts
}

// Flatten recursively unpacks arbitrarily nested groupings of path fragments
// into a flat list of strings. Accepted leaf and branch shapes are string,
// []string, and []any; anything else fails with ErrInvalidInput.
func Flatten(parts ...any) ([]string, error) {
	var flat []string
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			flat = append(flat, v)
		case []string:
			flat = append(flat, v...)
		case []any:
			inner, err := Flatten(v...)
			if err != nil {
				return nil, err
			}
			flat = append(flat, inner...)
		default:
			return nil, ErrInvalidInput
		}
	}
	return flat, nil
}

// Join recomposes path fragments into a single canonical string. Fragments may
// be partial paths ("a/b"), whole roots, or arbitrarily nested sequences; each
// is re-split so the root-aware separator logic applies uniformly. Fragments
// that cancel to nothing (e.g. "folder/..") simply vanish, and joining nothing
// yields "".
//
// cwd is threaded through to Split for "." and ".." fragments.
func Join(cwd string, parts ...any) (string, error) {
	flat, err := Flatten(parts...)
	if err != nil {
		return "", err
	}
	var all []string
	for _, part := range flat {
		all = append(all, Split(part, cwd)...)
	}
	if len(all) == 2 && all[0] == "/" && all[1] == "/" {
		// Two bare roots joined together are still the root.
		return "/", nil
	}
	return assemble(all), nil
}

// assemble joins already-canonical segments, applying the per-root separator
// rules. Empty segments (from trailing or doubled slashes) are dropped.
// Shared by Join and Resolve.
func assemble(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	parts = kept
	if len(parts) == 0 {
		return ""
	}
	if strings.HasPrefix(parts[0], "//") {
		// The UNC host segment carries no trailing slash of its own.
		return strings.Join(parts, "/")
	}
	if parts[0] == "/" {
		if len(parts) == 1 {
			return "/"
		}
		return "/" + strings.Join(parts[1:], "/")
	}
	if drive := CheckDrive(parts[0]); drive != "" {
		if len(parts) == 1 {
			return drive
		}
		return drive + strings.Join(parts[1:], "/")
	}
	return strings.Join(parts, "/")
}

// Resolve turns path into an absolute, canonical, forward-slash string. A path
// that is already rooted (Unix, UNC, or drive) is canonicalized; a relative
// path is prefixed with cwd. A cancelled path resolves to "".
func Resolve(path, cwd string) string {
	parts := Split(path, cwd)
	if len(parts) == 0 {
		return ""
	}
	joined := assemble(parts)
	root := parts[0]
	if strings.HasPrefix(root, "//") || root == "/" {
		return joined
	}
	if drive := CheckDrive(root); drive != "" {
		parts[0] = drive
		return assemble(parts)
	}
	return ForSlash(cwd) + "/" + joined
}

// Parent returns the directory containing path, after resolving it against
// cwd. Roots have no ancestor and are their own parent. A cancelled path has
// no parent and yields "".
func Parent(path, cwd string) string {
	p := Resolve(path, cwd)
	if p == "" {
		return ""
	}
	if isRootString(p, cwd) {
		return p
	}
	return Resolve(p+"/..", cwd)
}

// IsRoot reports whether path resolves to a bare root: "/", a drive root, or
// a UNC host with no further segments.
func IsRoot(path, cwd string) bool {
	p := Resolve(path, cwd)
	return p != "" && isRootString(p, cwd)
}

func isRootString(p, cwd string) bool {
	if p == "/" || CheckDrive(p) != "" {
		return true
	}
	return strings.HasPrefix(p, "//") && len(Split(p, cwd)) == 1
}

// dirname strips the final component of a forward-slash path, keeping a lone
// leading slash: dirname("/a") is "/", dirname("a/b") is "a", dirname("a")
// is "".
func dirname(p string) string {
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	head := p[:i+1]
	if strings.Trim(head, "/") != "" {
		head = strings.TrimRight(head, "/")
	}
	return head
}
