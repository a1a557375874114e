package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for different categories of failures
var (
	ErrConfigurationInvalid = errors.New("configuration error")
	ErrPromptFailed         = errors.New("input error")
	ErrFileNameUnavailable  = errors.New("file name error")
	ErrCopyFailed           = errors.New("copy error")
	ErrActivationFailed     = errors.New("activation error")
	ErrPersistFailed        = errors.New("persistence error")
	ErrWorkflowActive       = errors.New("workflow error")
)

// WorkflowError represents a structured error with actionable guidance. The
// cause is available through errors.Is/As but never printed.
type WorkflowError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *WorkflowError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *WorkflowError) Unwrap() error {
	return e.Cause
}

// Is matches the error category as well as the cause chain
func (e *WorkflowError) Is(target error) bool {
	return e.Type == target
}

// Error constructors with actionable guidance

func NewConfigurationError(message string, cause error) *WorkflowError {
	guidance := "Check your configuration file syntax and ensure all paths exist. " +
		"Use 'stratclone --config /path/to/config.toml' to specify a different config file."

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = "Check file permissions for your configuration directory. " +
			"Ensure you have read/write access to ~/.config/stratclone/"
	} else if strings.Contains(message, "template") {
		guidance = "Check the [prompts] templates in your configuration. " +
			"They use Go template syntax with {{ .File }} and {{ .Timestamp }}."
	}

	return &WorkflowError{
		Type:     ErrConfigurationInvalid,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewPromptError(cause error) *WorkflowError {
	return &WorkflowError{
		Type:     ErrPromptFailed,
		Message:  "failed to read an answer",
		Guidance: "Run stratclone from an interactive terminal, or pass --answer to skip the question.",
		Cause:    cause,
	}
}

func NewFileNameError(cause error) *WorkflowError {
	return &WorkflowError{
		Type:     ErrFileNameUnavailable,
		Message:  "failed to choose a new strategy file name",
		Guidance: "Ensure the strategies directory exists and is readable.",
		Cause:    cause,
	}
}

func NewCopyError(src, dst string, cause error) *WorkflowError {
	message := fmt.Sprintf("failed to copy '%s' to '%s'", src, dst)
	guidance := fmt.Sprintf("Ensure '%s' still exists in the strategies directory and the directory is writable. "+
		"A partially written '%s' is not removed automatically.", src, dst)

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = "Permission denied in the strategies directory. Ensure you have read and write access to it."
	} else if cause != nil && (strings.Contains(cause.Error(), "not exist") || strings.Contains(cause.Error(), "not found")) {
		guidance = fmt.Sprintf("The previous strategy '%s' no longer exists. "+
			"Use 'stratclone list' to see saved strategies and 'stratclone import <file>' to pick one.", src)
	}

	return &WorkflowError{
		Type:     ErrCopyFailed,
		Message:  message,
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewActivationError(name string, cause error) *WorkflowError {
	return &WorkflowError{
		Type:    ErrActivationFailed,
		Message: fmt.Sprintf("failed to activate '%s'", name),
		Guidance: fmt.Sprintf("The file was created but is not in effect. Fix its contents and run "+
			"'stratclone import %s'.", name),
		Cause: cause,
	}
}

func NewPersistError(name string, cause error) *WorkflowError {
	return &WorkflowError{
		Type:     ErrPersistFailed,
		Message:  fmt.Sprintf("failed to save '%s' as the previous strategy", name),
		Guidance: "Check that your configuration file is writable.",
		Cause:    cause,
	}
}

func NewWorkflowActiveError() *WorkflowError {
	return &WorkflowError{
		Type:    ErrWorkflowActive,
		Message: "another configuration workflow is already running",
	}
}

// IsRecoverableError reports whether the new strategy file exists and only a
// follow-up step failed, so 'stratclone import' can finish the job
func IsRecoverableError(err error) bool {
	var workflowErr *WorkflowError
	if !errors.As(err, &workflowErr) {
		return false
	}

	switch workflowErr.Type {
	case ErrActivationFailed, ErrPersistFailed:
		return true
	default:
		return false
	}
}
