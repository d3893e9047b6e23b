package model

import (
	"errors"
	"fmt"
)

// Load failure causes, wrapped in *ImportError.
var (
	ErrIncompleteScene = errors.New("scene is incomplete")
	ErrNoRootNode      = errors.New("scene has no root node")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ImportError reports a load that produced no meshes.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// TextureDecodeError reports a texture that could not be decoded. The
// texture slot is skipped and loading continues.
type TextureDecodeError struct {
	Path string
	Err  error
}

func (e *TextureDecodeError) Error() string {
	return fmt.Sprintf("decode texture %s: %v", e.Path, e.Err)
}

func (e *TextureDecodeError) Unwrap() error {
	return e.Err
}
