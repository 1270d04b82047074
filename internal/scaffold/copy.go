// Package scaffold materializes a project by copying the template tree.
package scaffold

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/vicky-gonsalves/deno-rest/internal/platform"
)

// Materializer copies template files into a target directory
type Materializer struct {
	logger zerolog.Logger
}

// NewMaterializer creates a materializer that logs each copied file at debug level
func NewMaterializer(logger zerolog.Logger) *Materializer {
	return &Materializer{logger: logger}
}

// CopyTemplate copies sourceDir recursively into targetPath and returns the number
// of files written. Existing files are overwritten. Nothing is rolled back on failure.
func (m *Materializer) CopyTemplate(sourceDir, targetPath string) (int, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		return 0, fsError("read template", sourceDir, err)
	}
	if !platform.IsDir(sourceDir) {
		return 0, fsError("read template", sourceDir, errors.New("not a directory"))
	}

	inside, err := platform.IsWithin(sourceDir, targetPath)
	if err != nil {
		return 0, fsError("resolve", targetPath, err)
	}
	if inside {
		return 0, fsError("copy into", targetPath, ErrTargetInsideTemplate)
	}

	if err := platform.MkdirProject(targetPath); err != nil {
		return 0, fsError("create directory", targetPath, err)
	}

	n, err := m.copyDir(sourceDir, targetPath)
	if err != nil {
		return n, err
	}
	m.logger.Debug().Str("source", sourceDir).Str("target", targetPath).Int("files", n).Msg("template copied")
	return n, nil
}

// CopyTemplate copies with a silent materializer
func CopyTemplate(sourceDir, targetPath string) (int, error) {
	return NewMaterializer(zerolog.Nop()).CopyTemplate(sourceDir, targetPath)
}

// copyDir recursively copies a directory
func (m *Materializer) copyDir(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fsError("read directory", src, err)
	}

	copied := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := platform.MkdirProject(dstPath); err != nil {
				return copied, fsError("create directory", dstPath, err)
			}
			n, err := m.copyDir(srcPath, dstPath)
			copied += n
			if err != nil {
				return copied, err
			}
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return copied, err
			}
			copied++
		default:
			if err := copyFile(srcPath, dstPath); err != nil {
				return copied, err
			}
			m.logger.Debug().Str("file", dstPath).Msg("copied")
			copied++
		}
	}

	return copied, nil
}

// copyFile copies a single file, keeping the source permission bits
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fsError("open", src, err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fsError("stat", src, err)
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fsError("write", dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return fsError("write", dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return fsError("write", dst, err)
	}
	return nil
}

// copySymlink re-creates a link, replacing whatever is at dst
func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fsError("read link", src, err)
	}
	if err := os.RemoveAll(dst); err != nil {
		return fsError("replace", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fsError("create link", dst, err)
	}
	return nil
}
