package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uvaexpress/internal/audit"
	"uvaexpress/internal/logger"
	"uvaexpress/internal/uva"
	"uvaexpress/pkg/models"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [invoices-file]",
	Short: "Calculate the UVA Kennzahlen from a JSON invoice list",
	Long: `Aggregate a period's invoices into the Kennzahlen of Formular U30.

The input file holds a JSON object with the invoice list, the period and
an optional manual adjustment:

  {
    "year": 2026,
    "month": 1,
    "invoices": [...],
    "sonstige_berichtigungen": "0.00"
  }

Every invoice is classified by direction (eingang/ausgang) and tax
treatment, amounts are accumulated per Kennzahl, and KZ095
(Zahllast/Gutschrift) is derived. Inconsistent invoices produce warnings
but are still included.`,
	Example: `  # Calculate and print the result as JSON
  uvaexpress calculate invoices.json

  # Save the result to a file
  uvaexpress calculate invoices.json -o uva-2026-01.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCalculate,
}

func init() {
	rootCmd.AddCommand(calculateCmd)

	calculateCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("calculate")
	outputPath, _ := cmd.Flags().GetString("output")

	var req models.CalculateRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	log.Info().
		Int("invoices", len(req.Invoices)).
		Int("year", req.Year).
		Int("month", req.Month).
		Msg("Starting UVA calculation")

	resp := uva.NewEngine().Calculate(req)

	hash, err := audit.PayloadHash(resp.KZValues)
	if err != nil {
		return err
	}
	auditLog.Log(audit.Entry{
		Action:      audit.ActionCalculate,
		Period:      periodString(req.Year, req.Month),
		PayloadHash: hash,
		Success:     resp.Success,
	})

	if err := writeJSONOutput(outputPath, resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("calculate: %d invoice(s) rejected at the input boundary", len(resp.Errors))
	}
	return nil
}
