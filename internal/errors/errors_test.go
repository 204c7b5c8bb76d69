package errors

import (
	stderrors "errors"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *CodeGenError
		code   ErrorCode
		status int
	}{
		{"invalid request", NewInvalidRequest("prompt is required"), ErrInvalidRequest, 400},
		{"not found", NewNotFound("abc"), ErrNotFound, 404},
		{"preview not found", NewPreviewNotFound("abc"), ErrNotFound, 404},
		{"rate limited", NewRateLimited(), ErrRateLimited, 429},
		{"upstream failed", NewUpstreamFailed(stderrors.New("boom")), ErrUpstreamFailed, 502},
		{"internal", NewInternal(stderrors.New("boom")), ErrInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
			}
			if tt.err.Error() == "" {
				t.Error("Error() is empty")
			}
		})
	}
}

func TestPreviewNotFound_Message(t *testing.T) {
	err := NewPreviewNotFound("xyz")
	if err.Message != "Preview not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["id"] != "xyz" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestUpstreamFailed_WrapsCause(t *testing.T) {
	err := NewUpstreamFailed(stderrors.New("connection refused"))
	if err.Message != "AI generation failed" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["details"] != "connection refused" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestIs(t *testing.T) {
	if !Is(NewNotFound("a"), ErrNotFound) {
		t.Error("Is should match the code")
	}
	if Is(NewNotFound("a"), ErrInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrInternal) {
		t.Error("Is should reject non-CodeGenError values")
	}
	if Is(nil, ErrInternal) {
		t.Error("Is should reject nil")
	}
}
