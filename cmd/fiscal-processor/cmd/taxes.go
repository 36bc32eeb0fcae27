package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fiscalbr/fiscal-processor/internal/money"
	"github.com/fiscalbr/fiscal-processor/internal/tax"
)

var (
	taxValue       string
	taxOrigin      string
	taxDestination string

	icmsInternalRate   string
	icmsInterstateRate string
	pisRate            string
	cofinsRate         string
)

var taxesCmd = &cobra.Command{
	Use:   "taxes",
	Short: "Compute ICMS, PIS and COFINS for a value and lane",
	Long: `Compute the indirect tax breakdown for a monetary value moved between
two region codes. ICMS uses the internal rate when origin equals destination,
the interstate rate otherwise.

The default rates are simplified placeholders and can be overridden per run.

Examples:
  fiscal-processor taxes --value 1000 --origin SP --destination SP
  fiscal-processor taxes --value 1000 --origin SP --destination RJ
  fiscal-processor taxes --value 1000 --origin SP --destination RJ --icms-interstate 7`,
	RunE: runTaxes,
}

func init() {
	rootCmd.AddCommand(taxesCmd)

	taxesCmd.Flags().StringVar(&taxValue, "value", "0", "Monetary value")
	taxesCmd.Flags().StringVar(&taxOrigin, "origin", "", "Origin region code (UF)")
	taxesCmd.Flags().StringVar(&taxDestination, "destination", "", "Destination region code (UF)")

	taxesCmd.Flags().StringVar(&icmsInternalRate, "icms-internal", "18", "ICMS rate for internal operations (%)")
	taxesCmd.Flags().StringVar(&icmsInterstateRate, "icms-interstate", "12", "ICMS rate for interstate operations (%)")
	taxesCmd.Flags().StringVar(&pisRate, "pis", "1.65", "PIS rate (%)")
	taxesCmd.Flags().StringVar(&cofinsRate, "cofins", "7.6", "COFINS rate (%)")
}

func runTaxes(cmd *cobra.Command, args []string) error {
	value, err := money.FromString(taxValue)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", taxValue, err)
	}

	rates, err := rateTableFromFlags()
	if err != nil {
		return err
	}

	calculator := tax.NewCalculator(rates)
	breakdown := calculator.Calculate(value, taxOrigin, taxDestination)

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(breakdown)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAX\tRATE\tVALUE")
	fmt.Fprintln(tw, "---\t----\t-----")
	fmt.Fprintf(tw, "ICMS\t%s%%\t%s\n", breakdown.ICMSRate, breakdown.ICMSValue.StringFixed(2))
	fmt.Fprintf(tw, "PIS\t%s%%\t%s\n", breakdown.PISRate, breakdown.PISValue.StringFixed(2))
	fmt.Fprintf(tw, "COFINS\t%s%%\t%s\n", breakdown.COFINSRate, breakdown.COFINSValue.StringFixed(2))
	return tw.Flush()
}

func rateTableFromFlags() (tax.RateTable, error) {
	var rates tax.RateTable
	var err error

	if rates.ICMSInternal, err = money.FromString(icmsInternalRate); err != nil {
		return rates, fmt.Errorf("invalid --icms-internal %q: %w", icmsInternalRate, err)
	}
	if rates.ICMSInterstate, err = money.FromString(icmsInterstateRate); err != nil {
		return rates, fmt.Errorf("invalid --icms-interstate %q: %w", icmsInterstateRate, err)
	}
	if rates.PIS, err = money.FromString(pisRate); err != nil {
		return rates, fmt.Errorf("invalid --pis %q: %w", pisRate, err)
	}
	if rates.COFINS, err = money.FromString(cofinsRate); err != nil {
		return rates, fmt.Errorf("invalid --cofins %q: %w", cofinsRate, err)
	}

	return rates, nil
}
