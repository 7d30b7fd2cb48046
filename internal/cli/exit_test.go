package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/example/dailyctl/internal/app"
)

func TestVerifyExitCode(t *testing.T) {
	tests := []struct {
		name   string
		result *app.VerifyResult
		want   int
	}{
		{"ok", &app.VerifyResult{Kind: app.VerifyOK}, 0},
		{"missing archive", &app.VerifyResult{Kind: app.VerifyMissingArchive}, 2},
		{"missing output", &app.VerifyResult{Kind: app.VerifyMissingOutput}, 3},
		{"digest mismatch", &app.VerifyResult{Kind: app.VerifyDigestMismatch}, 4},
		{
			"validator code propagated",
			&app.VerifyResult{
				Kind:          app.VerifyValidationFailed,
				ValidationErr: &app.ValidationError{Code: 2, Err: errors.New("bad data")},
			},
			2,
		},
		{
			"validator without code",
			&app.VerifyResult{
				Kind:          app.VerifyValidationFailed,
				ValidationErr: &app.ValidationError{Err: errors.New("bad data")},
			},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verifyExitCode(tt.result); got != tt.want {
				t.Errorf("verifyExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodeError(t *testing.T) {
	inner := errors.New("boom")
	err := &ExitCodeError{Code: 4, Err: inner}

	if err.Error() != "boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}

	var exitErr *ExitCodeError
	wrapped := fmt.Errorf("context: %w", err)
	if !errors.As(wrapped, &exitErr) {
		t.Fatal("errors.As failed to find ExitCodeError")
	}
	if exitErr.Code != 4 {
		t.Errorf("code = %d, want 4", exitErr.Code)
	}

	empty := &ExitCodeError{Code: 2}
	if empty.Error() != "" {
		t.Errorf("Error() on bare code = %q, want empty", empty.Error())
	}
}
