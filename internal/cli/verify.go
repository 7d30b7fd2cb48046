package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/dailyctl/internal/app"
	"github.com/example/dailyctl/internal/wire"
)

// VerifyCmd returns the verify command
func VerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [date]",
		Short: "Verify the published page matches a dated archive",
		Long: `Verify that index.html is byte-identical to archive/<date>.html.

The date defaults to today (UTC). Checks run in order and stop at the
first failure:
  exit 2  archive file missing
  exit 3  output file missing
  exit *  schema validation failed (validator's status)
  exit 4  SHA-256 mismatch between archive and output
  exit 0  digests match

Examples:
  dailyctl verify               # today's archive
  dailyctl verify 2026-02-14    # a specific day`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) > 0 {
				date = args[0]
			}

			started := time.Now()
			result, err := wire.VerifyService().Run(cmd.Context(), date)
			if err != nil {
				return err
			}

			code := verifyExitCode(result)
			recordRun(cmd.Context(), "verify", verifyOutcome(result), verifyDetail(result), code, started)

			switch result.Kind {
			case app.VerifyOK:
				fmt.Printf("[verify] ok: %s matches %s (%s)\n", result.OutputPath, result.ArchivePath, result.ArchiveDigest)
				return nil
			case app.VerifyMissingArchive:
				fmt.Fprintf(os.Stderr, "[verify] missing archive file: %s\n", result.ArchivePath)
			case app.VerifyMissingOutput:
				fmt.Fprintf(os.Stderr, "[verify] missing output file: %s\n", result.OutputPath)
			case app.VerifyValidationFailed:
				fmt.Fprintf(os.Stderr, "[verify] validation failed: %v\n", result.ValidationErr)
			case app.VerifyDigestMismatch:
				fmt.Fprintf(os.Stderr, "[verify] checksum mismatch for %s\n", result.Date)
				fmt.Fprintf(os.Stderr, "[verify] archive: %s\n", result.ArchiveDigest)
				fmt.Fprintf(os.Stderr, "[verify] output:  %s\n", result.OutputDigest)
			}

			return &ExitCodeError{Code: code}
		},
	}
}

func verifyOutcome(result *app.VerifyResult) string {
	switch result.Kind {
	case app.VerifyOK:
		return "ok"
	case app.VerifyMissingArchive:
		return "missing-archive"
	case app.VerifyMissingOutput:
		return "missing-output"
	case app.VerifyValidationFailed:
		return "validation-failed"
	case app.VerifyDigestMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

func verifyDetail(result *app.VerifyResult) string {
	switch result.Kind {
	case app.VerifyOK:
		return fmt.Sprintf("%s %s", result.Date, result.ArchiveDigest)
	case app.VerifyDigestMismatch:
		return fmt.Sprintf("%s archive=%s output=%s", result.Date, result.ArchiveDigest, result.OutputDigest)
	case app.VerifyValidationFailed:
		return result.ValidationErr.Error()
	default:
		return result.Date
	}
}
