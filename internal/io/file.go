package ioutils

import (
	"context"
	"errors"
	"os"

	"github.com/handiism/scale-sheets/internal/model"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Nothing is written once ctx is done.
//
// Example:
//
//	err := WriteFile(ctx, "out/practice_c.ly", []byte(source))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return model.NewError(model.KindFileSystem, "write "+path, err)
	}
	return nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return model.NewError(model.KindFileSystem, "create directory "+path, err)
	}
	return nil
}

// DeleteExisting removes each path that exists.
//
// Missing files are ignored. Any other failure (permission denied, path is
// a non-empty directory) stops immediately and is returned. onDeleted, if
// not nil, is called for every file actually removed.
//
// Example:
//
//	err := DeleteExisting(score.Artifacts(), func(path string) {
//	    fmt.Println("Deleted existing file:", path)
//	})
func DeleteExisting(paths []string, onDeleted func(path string)) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return model.NewError(model.KindFileSystem, "delete "+path, err)
		}
		if onDeleted != nil {
			onDeleted(path)
		}
	}
	return nil
}
