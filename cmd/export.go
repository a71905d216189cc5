package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uvaexpress/internal/audit"
	"uvaexpress/internal/logger"
	"uvaexpress/internal/uva"
	"uvaexpress/pkg/models"
)

var exportCmd = &cobra.Command{
	Use:   "export [kz-file]",
	Short: "Export calculated Kennzahlen as FinanzOnline XML",
	Long: `Render a calculated Kennzahlen set as a FinanzOnline-ready
ERKLAERUNGENPAKET document (Formular U30) and verify it against the
structural schema rules.

The input file holds the kz_values, the filer data and the period:

  {
    "kz_values": {...},
    "steuernummer": "12 345/6789",
    "year": 2026,
    "month": 1,
    "unternehmen_name": "..."
  }

By default the XML document itself is written; --json wraps it in the
full export response including validation issues.`,
	Example: `  # Write the XML document to the suggested filename
  uvaexpress export uva-2026-01.json

  # Write to an explicit path
  uvaexpress export uva-2026-01.json -o declaration.xml

  # Full JSON response with validation issues
  uvaexpress export uva-2026-01.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file path (default: the suggested UVA_YYYY_MM.xml)")
	exportCmd.Flags().Bool("json", false, "Emit the full JSON export response instead of raw XML")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")
	outputPath, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")

	var req models.XMLExportRequest
	if err := readJSONInput(args[0], &req); err != nil {
		return err
	}

	resp := uva.BuildXML(req)
	if resp.Success {
		if issues := uva.ValidateSchema(resp.XMLContent); models.HasErrors(issues) {
			resp.ValidationPassed = false
			resp.ValidationIssues = append(resp.ValidationIssues, issues...)
		}
	}

	log.Info().
		Int("year", req.Year).
		Int("month", req.Month).
		Bool("success", resp.Success).
		Str("filename", resp.Filename).
		Msg("XML export finished")

	hash, err := audit.PayloadHash(req.KZValues)
	if err != nil {
		return err
	}
	auditLog.Log(audit.Entry{
		Action:      audit.ActionExportXML,
		Period:      periodString(req.Year, req.Month),
		PayloadHash: hash,
		Success:     resp.Success,
	})

	if asJSON {
		return writeJSONOutput(outputPath, resp)
	}
	if !resp.Success {
		return fmt.Errorf("XML export failed: %s", resp.ValidationIssues[0].Message)
	}
	if outputPath == "" {
		outputPath = resp.Filename
	}
	if err := writeOutput(outputPath, []byte(resp.XMLContent)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", outputPath)
	return nil
}
