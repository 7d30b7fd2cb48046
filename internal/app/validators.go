package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// SchemaValidator adapts ValidateService to the verify flow. The data
// file is only validated when present: a tree without data/daily.json
// has nothing to drift, and verify's own contract is the archive/output
// comparison.
type SchemaValidator struct {
	svc  *ValidateService
	path string
	warn io.Writer
}

// NewSchemaValidator creates a validator over the given daily data file.
// Warnings are written to warn.
func NewSchemaValidator(svc *ValidateService, path string, warn io.Writer) *SchemaValidator {
	return &SchemaValidator{svc: svc, path: path, warn: warn}
}

// Validate implements Validator.
func (v *SchemaValidator) Validate(ctx context.Context) *ValidationError {
	if _, err := os.Stat(v.path); err != nil {
		return nil
	}

	report, err := v.svc.ValidateFile(v.path)
	for _, w := range report.Warnings {
		fmt.Fprintf(v.warn, "[validate] WARNING: %s\n", w)
	}
	if err != nil {
		return &ValidationError{Code: ValidateExitCode, Err: err}
	}
	return nil
}

// ExecValidator runs an external validator command and propagates its
// exit status. The command's output flows through to the parent's
// streams, matching its standalone behavior.
type ExecValidator struct {
	argv []string
	dir  string
}

// NewExecValidator creates a validator that shells out to argv in dir.
func NewExecValidator(argv []string, dir string) *ExecValidator {
	return &ExecValidator{argv: argv, dir: dir}
}

// Validate implements Validator.
func (v *ExecValidator) Validate(ctx context.Context) *ValidationError {
	cmd := exec.CommandContext(ctx, v.argv[0], v.argv[1:]...)
	cmd.Dir = v.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}

	code := 1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ValidationError{Code: code, Err: fmt.Errorf("validator %s failed: %w", v.argv[0], err)}
}
