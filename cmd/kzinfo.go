package cmd

import (
	"github.com/spf13/cobra"

	"uvaexpress/internal/uva"
)

var kzInfoCmd = &cobra.Command{
	Use:   "kz-info",
	Short: "Print the Kennzahl reference table of Formular U30",
	Long: `Print reference metadata for every Kennzahl of the U30 form:
label, form section, UStG paragraph and statutory rate where applicable.`,
	Example: `  # Full reference as JSON
  uvaexpress kz-info

  # Save to a file
  uvaexpress kz-info -o kennzahlen.json`,
	Args: cobra.NoArgs,
	RunE: runKZInfo,
}

func init() {
	rootCmd.AddCommand(kzInfoCmd)

	kzInfoCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runKZInfo(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	return writeJSONOutput(outputPath, uva.KZReference)
}
