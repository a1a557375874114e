package orchestrator

import (
	"errors"
	"strings"
	"testing"
)

func TestWorkflowError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *WorkflowError
		wantText string
	}{
		{
			name: "error with guidance",
			err: &WorkflowError{
				Type:     ErrCopyFailed,
				Message:  "test message",
				Guidance: "test guidance",
			},
			wantText: "copy error: test message\n\nSuggestion: test guidance",
		},
		{
			name: "error without guidance",
			err: &WorkflowError{
				Type:    ErrConfigurationInvalid,
				Message: "config error",
			},
			wantText: "configuration error: config error",
		},
		{
			name: "cause is not printed",
			err: &WorkflowError{
				Type:    ErrPersistFailed,
				Message: "failed",
				Cause:   errors.New("open /secret/path: permission denied"),
			},
			wantText: "persistence error: failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantText {
				t.Errorf("WorkflowError.Error() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestNewConfigurationError(t *testing.T) {
	cause := errors.New("file not found")
	err := NewConfigurationError("config file missing", cause)

	if !errors.Is(err, ErrConfigurationInvalid) {
		t.Errorf("Expected error type %v, got %v", ErrConfigurationInvalid, err.Type)
	}
	if !strings.Contains(err.Guidance, "configuration file") {
		t.Errorf("Expected guidance to mention configuration file, got: %s", err.Guidance)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected error to wrap cause")
	}
}

func TestNewCopyError_Guidance(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  string
	}{
		{"missing source", errors.New("open conf_old.yml: file does not exist"), "no longer exists"},
		{"permission", errors.New("open conf_new.yml: permission denied"), "Permission denied"},
		{"other", errors.New("short write"), "not removed automatically"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCopyError("conf_old.yml", "conf_new.yml", tt.cause)
			if !strings.Contains(err.Guidance, tt.want) {
				t.Errorf("Guidance = %q, want containing %q", err.Guidance, tt.want)
			}
			if !errors.Is(err, ErrCopyFailed) || !errors.Is(err, tt.cause) {
				t.Error("copy error does not match its type and cause")
			}
		})
	}
}

func TestIsRecoverableError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		recoverable bool
	}{
		{
			name:        "activation error",
			err:         NewActivationError("conf_new.yml", errors.New("bad yaml")),
			recoverable: true,
		},
		{
			name:        "persistence error",
			err:         NewPersistError("conf_new.yml", errors.New("read-only")),
			recoverable: true,
		},
		{
			name:        "copy error",
			err:         NewCopyError("a.yml", "b.yml", errors.New("boom")),
			recoverable: false,
		},
		{
			name:        "workflow active",
			err:         NewWorkflowActiveError(),
			recoverable: false,
		},
		{
			name:        "non-workflow error",
			err:         errors.New("regular error"),
			recoverable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRecoverableError(tt.err)
			if got != tt.recoverable {
				t.Errorf("IsRecoverableError() = %v, want %v", got, tt.recoverable)
			}
		})
	}
}
