// Package vault error types for distinguishing caller-visible rejections
// from internal failures.
package vault

import (
	"errors"
	"fmt"
)

// ConfigError indicates the vault root is missing or unusable. Fatal: the
// process must not start serving with a bad root.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// NewConfigErrorf creates a config error with formatting.
func NewConfigErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError indicates a caller-supplied path or payload failed one of
// the structural checks. The message carries no system detail and is safe to
// echo to an untrusted caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationErrorf creates a validation error with formatting.
func NewValidationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// SymlinkedParentError indicates a directory between the write target and the
// vault root is a symbolic link.
type SymlinkedParentError struct {
	Path string
}

func (e *SymlinkedParentError) Error() string {
	return fmt.Sprintf("refusing to write through symlinked directory: %s", e.Path)
}

// SymlinkTargetError indicates the final component of a write target is a
// symbolic link. Raised by the no-follow open itself, not by a separate
// check, so there is no window between detection and refusal.
type SymlinkTargetError struct {
	Path string
}

func (e *SymlinkTargetError) Error() string {
	return fmt.Sprintf("refusing to write to symlink: %s", e.Path)
}

// TooLargeError indicates a file exceeds the read size ceiling. The content
// is never loaded when this is raised.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %s is %d bytes (limit %d)", e.Path, e.Size, e.Limit)
}

// NotFoundError indicates a requested name matched nothing in the vault.
// Non-fatal: reported inline within a read batch.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Name)
}

// IsConfigError checks if an error is a config error.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSymlinkError checks if an error is either symlink rejection.
func IsSymlinkError(err error) bool {
	var parentErr *SymlinkedParentError
	var targetErr *SymlinkTargetError
	return errors.As(err, &parentErr) || errors.As(err, &targetErr)
}

// IsTooLargeError checks if an error is a read size ceiling rejection.
func IsTooLargeError(err error) bool {
	var tooLargeErr *TooLargeError
	return errors.As(err, &tooLargeErr)
}

// IsNotFoundError checks if an error is a per-name not-found marker.
func IsNotFoundError(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}
