package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "fiscal-processor",
	Short: "Process Brazilian fiscal XML documents (CT-e and NFS-e)",
	Long: `Fiscal Processor normalizes Brazilian fiscal XML documents into
canonical transaction records, computes indirect taxes (ICMS, PIS, COFINS)
and validates the records against fiscal business rules.

Supports:
  - CT-e freight manifests (infCte container)
  - NFS-e service invoices (municipal layouts)

Examples:
  # Process a single XML file
  fiscal-processor process cte.xml

  # Validate files
  fiscal-processor validate *.xml

  # Compute taxes for a lane
  fiscal-processor taxes --value 1000 --origin SP --destination RJ

  # Start the HTTP API
  fiscal-processor serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Server listen address
	if serverAddr == "" {
		serverAddr = os.Getenv("FISCAL_PROCESSOR_ADDR")
	}
	if serverAddr == "" {
		serverAddr = ":8080"
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
