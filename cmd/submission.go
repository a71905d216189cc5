package cmd

import (
	"github.com/spf13/cobra"

	"uvaexpress/internal/audit"
	"uvaexpress/internal/config"
	"uvaexpress/internal/logger"
	"uvaexpress/internal/submission"
	"uvaexpress/pkg/models"
)

var submissionCmd = &cobra.Command{
	Use:   "submission",
	Short: "Prepare and confirm the UVA submission",
	Long: `Drive the submission workflow of a calculated declaration:
Entwurf → Berechnet → Validiert → Freigegeben → Eingereicht → Bestätigt.

"prepare" evaluates the readiness checklist (Steuernummer, plausibility,
KZ095 consistency, XML renderability, period checks) and reports whether
the declaration may be released. "confirm" records the manual
FinanzOnline submission; retries with the same idempotency key replay
the original result without a second status change.`,
}

var submissionPrepareCmd = &cobra.Command{
	Use:   "prepare [request-file]",
	Short: "Evaluate the submission readiness checklist",
	Example: `  # Check whether the declaration is ready for release
  uvaexpress submission prepare prepare-request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmissionPrepare,
}

var submissionConfirmCmd = &cobra.Command{
	Use:   "confirm [request-file]",
	Short: "Record the manual FinanzOnline submission",
	Example: `  # Confirm with an idempotency key so retries are safe
  uvaexpress submission confirm confirm-request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmissionConfirm,
}

func init() {
	rootCmd.AddCommand(submissionCmd)
	submissionCmd.AddCommand(submissionPrepareCmd)
	submissionCmd.AddCommand(submissionConfirmCmd)

	submissionPrepareCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	submissionConfirmCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

// newGate builds a gate on a store sized from the configuration. The CLI
// is a single process; the store lives for the process lifetime.
func newGate() *submission.Gate {
	size := submission.DefaultStoreCapacity
	if cfg, err := config.Load(); err == nil {
		size = cfg.SubmissionStoreSize
	}
	return submission.NewGate(submission.NewMemoryStore(size))
}

func runSubmissionPrepare(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("submission")
	outputPath, _ := cmd.Flags().GetString("output")

	var req models.PrepareRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	resp := newGate().Prepare(req)

	log.Info().
		Int("year", req.Year).
		Int("month", req.Month).
		Bool("ready", resp.Ready).
		Int("blocking", resp.BlockingIssues).
		Msg("Submission preparation finished")

	hash, err := audit.PayloadHash(req.KZValues)
	if err != nil {
		return err
	}
	auditLog.Log(audit.Entry{
		Action:        audit.ActionSubmissionPrepare,
		CorrelationID: req.CorrelationID,
		Period:        periodString(req.Year, req.Month),
		TenantID:      req.TenantID,
		UserID:        req.UserID,
		OldStatus:     string(resp.CurrentStatus),
		NewStatus:     string(resp.NextStatus),
		PayloadHash:   hash,
		Success:       resp.Ready,
	})

	return writeJSONOutput(outputPath, resp)
}

func runSubmissionConfirm(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("submission")
	outputPath, _ := cmd.Flags().GetString("output")

	var req models.ConfirmRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	resp, err := newGate().Confirm(req)
	if err != nil {
		return err
	}

	log.Info().
		Int("year", req.Year).
		Int("month", req.Month).
		Bool("duplicate", resp.WasDuplicate).
		Msg("Submission confirmation finished")

	auditLog.Log(audit.Entry{
		Action:        audit.ActionSubmissionConfirm,
		CorrelationID: req.CorrelationID,
		Period:        periodString(req.Year, req.Month),
		TenantID:      req.TenantID,
		UserID:        req.UserID,
		NewStatus:     string(resp.NewStatus),
		Success:       resp.Success,
	})

	return writeJSONOutput(outputPath, resp)
}
