package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/example/dailyctl/internal/config"
)

// VerifyKind discriminates the terminal outcomes of a verify run. Each
// kind maps to exactly one process exit code at the CLI boundary.
type VerifyKind int

const (
	VerifyOK VerifyKind = iota
	VerifyMissingArchive
	VerifyMissingOutput
	VerifyValidationFailed
	VerifyDigestMismatch
)

// VerifyResult is the outcome of one verify run.
type VerifyResult struct {
	Kind          VerifyKind
	Date          string
	ArchivePath   string
	OutputPath    string
	ArchiveDigest string
	OutputDigest  string
	ValidationErr *ValidationError
}

// ValidationError is a validator failure with the exit status it should
// propagate as.
type ValidationError struct {
	Code int
	Err  error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Validator is the structural validation step of a verify run. It
// returns a *ValidationError on failure, nil otherwise.
type Validator interface {
	Validate(ctx context.Context) *ValidationError
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// VerifyService confirms the published page matches a dated archive
// snapshot byte for byte.
type VerifyService struct {
	cfg       *config.Config
	validator Validator
}

// NewVerifyService creates a new VerifyService.
func NewVerifyService(cfg *config.Config, validator Validator) *VerifyService {
	return &VerifyService{cfg: cfg, validator: validator}
}

// Run checks the archive for the given date against the live page.
// An empty date defaults to the current UTC date. The checks run in a
// fixed order and the first failed one decides the result kind; there
// are no retries.
func (s *VerifyService) Run(ctx context.Context, date string) (*VerifyResult, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if !dateRe.MatchString(date) {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}

	result := &VerifyResult{
		Date:        date,
		ArchivePath: s.cfg.ArchivePath(date),
		OutputPath:  s.cfg.OutputPath(),
	}

	if _, err := os.Stat(result.ArchivePath); err != nil {
		result.Kind = VerifyMissingArchive
		return result, nil
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		result.Kind = VerifyMissingOutput
		return result, nil
	}

	if s.validator != nil {
		if verr := s.validator.Validate(ctx); verr != nil {
			result.Kind = VerifyValidationFailed
			result.ValidationErr = verr
			return result, nil
		}
	}

	archiveDigest, err := fileDigest(result.ArchivePath)
	if err != nil {
		return nil, err
	}
	outputDigest, err := fileDigest(result.OutputPath)
	if err != nil {
		return nil, err
	}
	result.ArchiveDigest = archiveDigest
	result.OutputDigest = outputDigest

	if archiveDigest != outputDigest {
		result.Kind = VerifyDigestMismatch
		return result, nil
	}

	result.Kind = VerifyOK
	return result, nil
}

// fileDigest returns the hex SHA-256 of a file's content.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
