package asset

import (
	"os"
	"path/filepath"
	"strings"
)

// ToSlash converts every backslash in p to a forward slash, regardless of
// the host OS. The game only understands forward slashes.
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// HasParentSegment reports whether p, after slash normalization, contains a
// ".." path segment.
func HasParentSegment(p string) bool {
	for _, seg := range strings.Split(ToSlash(p), "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// ContainingDir returns the directory that relative references in file are
// resolved against: file itself when it names an existing directory,
// otherwise its parent.
func ContainingDir(file string) string {
	if IsDir(file) {
		return file
	}
	return filepath.Dir(file)
}

// RelativeTo returns target expressed relative to the containing directory
// of file. ok is false when no relative form exists or the relative form
// would need a ".." segment.
func RelativeTo(file, target string) (rel string, ok bool) {
	base, err := filepath.Abs(ContainingDir(file))
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	rel, err = filepath.Rel(base, abs)
	if err != nil || HasParentSegment(rel) {
		return "", false
	}
	return rel, true
}

// Absolute returns the absolute form of p, or p unchanged if it cannot be
// resolved.
func Absolute(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// IsDir reports whether p names an existing directory.
func IsDir(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// IsRegularFile reports whether p names an existing regular file.
func IsRegularFile(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
