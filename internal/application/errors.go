package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrConfig     = errors.New("configuration error")
	ErrExtraction = errors.New("extraction failed")
	ErrMove       = errors.New("move failed")
	ErrPersist    = errors.New("persist failed")
	ErrInput      = errors.New("invalid input")
	ErrAborted    = errors.New("session aborted by operator")
	ErrNoRules    = errors.New("no search rules loaded")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigError represents a run-fatal problem with the rule file or settings
type ConfigError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ExtractionError represents a document whose text could not be read
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// MoveError represents a move-related failure
type MoveError struct {
	Source string
	Folder string
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot move %s to %s: %s: %v", e.Source, e.Folder, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot move %s to %s: %s", e.Source, e.Folder, e.Reason)
}

func (e *MoveError) Unwrap() error { return e.Err }

func (e *MoveError) Is(target error) bool {
	return target == ErrMove
}

// PersistError represents a rule file that could not be written back
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("cannot save rules to %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool {
	return target == ErrPersist
}

// InputError represents operator input that does not fit the prompt
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInput
}
