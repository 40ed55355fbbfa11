package stencil

import "errors"

var (
	// ErrHookFailed indicates a hook exited with a non-zero code.
	ErrHookFailed = errors.New("hook failed")
	// ErrTemplateNotFound indicates the template argument is neither a directory nor a git URL.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrOutputDirExists indicates the output directory already exists and --force was not given.
	ErrOutputDirExists = errors.New("output directory already exists")
	// ErrConfigInvalid indicates the template configuration failed validation.
	ErrConfigInvalid = errors.New("invalid template config")
	// ErrAnswerInvalid indicates an answer does not satisfy its question's schema.
	ErrAnswerInvalid = errors.New("invalid answer")
)
