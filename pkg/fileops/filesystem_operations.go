// Package fileops provides logged filesystem operations used by provisioning stages.
package fileops

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// FileSystemOperations provides filesystem operations
type FileSystemOperations struct {
	logger *zap.Logger
}

// NewFileSystemOperations creates a new filesystem operations implementation
func NewFileSystemOperations(logger *zap.Logger) *FileSystemOperations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemOperations{
		logger: logger.Named("filesystem"),
	}
}

// WriteFile replaces path atomically: data goes to a sibling temp file which
// is renamed over the target, so readers never observe a partial file.
func (f *FileSystemOperations) WriteFile(_ context.Context, path string, data []byte, perm os.FileMode) error {
	f.logger.Debug("Writing file",
		zap.String("path", path),
		zap.Int("size", len(data)),
		zap.String("permissions", perm.String()))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, shared.DirPermStandard); err != nil {
		return cerr.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return cerr.Wrapf(err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return cerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return cerr.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return cerr.Wrapf(err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return cerr.Wrapf(err, "rename into %s", path)
	}

	f.logger.Info("File written successfully", zap.String("path", path), zap.Int("size", len(data)))
	return nil
}

// Exists reports whether path exists. Symlinks are not followed.
func (f *FileSystemOperations) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, cerr.Wrapf(err, "stat %s", path)
}

// CreateDirectory creates path and any missing parents.
func (f *FileSystemOperations) CreateDirectory(_ context.Context, path string, perm os.FileMode) error {
	f.logger.Debug("Creating directory", zap.String("path", path))
	if err := os.MkdirAll(path, perm); err != nil {
		return cerr.Wrapf(err, "create directory %s", path)
	}
	return nil
}

// Symlink points link at target, replacing whatever link was there.
func (f *FileSystemOperations) Symlink(ctx context.Context, target, link string) error {
	if current, err := os.Readlink(link); err == nil && current == target {
		f.logger.Debug("Symlink already correct", zap.String("link", link), zap.String("target", target))
		return nil
	}
	if err := f.Remove(ctx, link); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(link), shared.DirPermStandard); err != nil {
		return cerr.Wrapf(err, "create directory for %s", link)
	}
	if err := os.Symlink(target, link); err != nil {
		return cerr.Wrapf(err, "link %s -> %s", link, target)
	}
	f.logger.Info("Symlink created", zap.String("link", link), zap.String("target", target))
	return nil
}

// Remove deletes path. A missing path is not an error.
func (f *FileSystemOperations) Remove(_ context.Context, path string) error {
	err := os.Remove(path)
	if err == nil {
		f.logger.Info("Removed", zap.String("path", path))
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return cerr.Wrapf(err, "remove %s", path)
}

// Chmod changes the mode of path.
func (f *FileSystemOperations) Chmod(_ context.Context, path string, perm os.FileMode) error {
	if err := os.Chmod(path, perm); err != nil {
		return cerr.Wrapf(err, "chmod %s", path)
	}
	f.logger.Debug("Mode changed", zap.String("path", path), zap.String("mode", perm.String()))
	return nil
}
