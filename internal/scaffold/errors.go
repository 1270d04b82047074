package scaffold

import (
	"errors"
	"fmt"
)

// ErrTargetInsideTemplate is returned when the target is the template directory or lies inside it
var ErrTargetInsideTemplate = errors.New("target cannot be the template directory or inside it")

// FilesystemError is returned when the template cannot be read or the target cannot be written
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func fsError(op, path string, err error) error {
	return &FilesystemError{Op: op, Path: path, Err: err}
}
