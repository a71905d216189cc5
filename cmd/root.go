package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"uvaexpress/internal/audit"
	"uvaexpress/internal/logger"
)

// auditLog is the process-wide audit trail shared by all commands.
var auditLog = audit.NewLogger()

func periodString(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "uvaexpress",
	Short: "UVA Express - Austrian VAT advance declaration toolkit",
	Long: `UVA Express computes, validates and exports the Austrian
Umsatzsteuervoranmeldung (Formular U30) from invoice data.

Invoices go in as JSON, the Kennzahlen come out aggregated, checked
against the BMF plausibility rules and rendered as FinanzOnline-ready
XML. The submission workflow tracks the declaration from calculation
through manual confirmation.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("UVA Express CLI executed")

		fmt.Println("Welcome to UVA Express!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
