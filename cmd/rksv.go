package cmd

import (
	"github.com/spf13/cobra"

	"uvaexpress/internal/audit"
	"uvaexpress/internal/logger"
	"uvaexpress/internal/rksv"
	"uvaexpress/pkg/models"
)

var rksvCmd = &cobra.Command{
	Use:   "rksv [receipts-file]",
	Short: "Validate RKSV cash-register receipt data",
	Long: `Check cash-register receipts against the RKSV format rules:
Kassen-ID and Belegnummer formats, QR code structure (DEP export,
_R1-AT prefix), amount and date plausibility, and duplicate Belegnummern
per till.

The input file holds the receipt list:

  {
    "receipts": [
      {"rksv_kassenid": "KASSE-1", "rksv_belegnr": "42", "rksv_qr_data": "_R1-AT0_..."}
    ]
  }

Signature verification is not performed; the check covers form, not
authenticity.`,
	Example: `  # Validate a batch of receipts
  uvaexpress rksv receipts.json

  # Save the report
  uvaexpress rksv receipts.json -o rksv-report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRKSV,
}

func init() {
	rootCmd.AddCommand(rksvCmd)

	rksvCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runRKSV(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("rksv")
	outputPath, _ := cmd.Flags().GetString("output")

	var req models.RKSVValidationRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	resp := rksv.Validate(req)

	log.Info().
		Int("total", resp.TotalReceipts).
		Int("valid", resp.ValidReceipts).
		Int("invalid", resp.InvalidReceipts).
		Msg("RKSV validation finished")

	auditLog.Log(audit.Entry{
		Action:  audit.ActionRKSVValidate,
		Success: resp.Valid,
	})

	return writeJSONOutput(outputPath, resp)
}
