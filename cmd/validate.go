package cmd

import (
	"github.com/spf13/cobra"

	"uvaexpress/internal/audit"
	"uvaexpress/internal/logger"
	"uvaexpress/internal/uva"
	"uvaexpress/pkg/models"
)

var validateCmd = &cobra.Command{
	Use:   "validate [kz-file]",
	Short: "Run the BMF plausibility checks on calculated Kennzahlen",
	Long: `Cross-check a calculated Kennzahlen set against the BMF
plausibility rules: rate consistency per Kennzahl, recomputation of
KZ090 and KZ095, reverse-charge and IG-Erwerb symmetry, negative bases
and the KZ000 turnover sum.

The input file holds the kz_values together with the period; the
invoice list is optional and enables duplicate and period cross-checks:

  {
    "kz_values": {...},
    "year": 2026,
    "month": 1,
    "invoices": [...]
  }

The result partitions all findings into errors, warnings and infos.
Only errors make the declaration invalid.`,
	Example: `  # Validate a calculated declaration
  uvaexpress validate uva-2026-01.json

  # Save the validation report
  uvaexpress validate uva-2026-01.json -o report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")
	outputPath, _ := cmd.Flags().GetString("output")

	var req models.ValidateRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	resp := uva.Validate(req)

	log.Info().
		Int("year", req.Year).
		Int("month", req.Month).
		Bool("valid", resp.Valid).
		Int("errors", len(resp.Errors)).
		Int("warnings", len(resp.Warnings)).
		Msg("UVA validation finished")

	hash, err := audit.PayloadHash(req.KZValues)
	if err != nil {
		return err
	}
	auditLog.Log(audit.Entry{
		Action:      audit.ActionValidate,
		Period:      periodString(req.Year, req.Month),
		PayloadHash: hash,
		Success:     resp.Valid,
	})

	return writeJSONOutput(outputPath, resp)
}
