package asset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile reads the whole of path.
//
// Precondition: path names a readable file.
// Postcondition: returns the file contents, an ErrArgument-kind error when
// the file cannot be opened for reading, or an ErrIO-kind error when reading
// fails after a successful open. The handle is always closed.
func ReadFile(op, path string) ([]byte, error) {
	if path == "" {
		return nil, ArgumentError(op, path, "path is empty")
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, ArgumentError(op, path, "can not read file: %w", err)
		}
		return nil, IOError(op, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, IOError(op, path, err)
	}
	return data, nil
}

// WriteFileAtomic writes data to path through a temporary sibling file and a
// rename, so a failed write never leaves a partially written path behind.
// A symlinked path is written through to its target, and an existing file
// keeps its mode; perm applies only to new files.
//
// Postcondition: on success path holds exactly data; on failure path is
// unchanged and the temporary file is removed.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	target, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(target); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("renaming temporary file: %w", err)
	}
	return nil
}

// resolveTarget returns the file a write to path lands in: path itself, or
// the final target when path is a symlink, dangling or not.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dest, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("reading symlink: %w", err)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return dest, nil
}
