package cli

import "github.com/example/dailyctl/internal/app"

// ExitCodeError carries a specific process exit code out of a command.
// The command prints its own diagnostics; main only maps the code.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Verify exit codes. Each VerifyKind maps to exactly one code here;
// validation failures propagate the validator's own status.
const (
	ExitMissingArchive = 2
	ExitMissingOutput  = 3
	ExitMismatch       = 4
)

// verifyExitCode maps a verify outcome to its process exit code.
func verifyExitCode(result *app.VerifyResult) int {
	switch result.Kind {
	case app.VerifyOK:
		return 0
	case app.VerifyMissingArchive:
		return ExitMissingArchive
	case app.VerifyMissingOutput:
		return ExitMissingOutput
	case app.VerifyValidationFailed:
		if result.ValidationErr != nil && result.ValidationErr.Code != 0 {
			return result.ValidationErr.Code
		}
		return 1
	case app.VerifyDigestMismatch:
		return ExitMismatch
	default:
		return 1
	}
}
