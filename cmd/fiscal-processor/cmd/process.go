package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/processor"
	"github.com/fiscalbr/fiscal-processor/internal/tax"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

var (
	outputFile string
	timeout    time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process fiscal XML files",
	Long: `Process one or more fiscal XML files: extract the canonical record,
compute ICMS/PIS/COFINS and validate it.

Examples:
  fiscal-processor process cte.xml
  fiscal-processor process *.xml -o results.json
  fiscal-processor process documentos/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	processCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Processing timeout per file")
}

func runProcess(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	printVerbose("Found %d files to process\n", len(files))

	pipeline := processor.NewPipeline()

	results := make([]*ProcessResult, 0, len(files))
	for _, file := range files {
		printVerbose("Processing: %s\n", file)

		result := processFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			printVerbose("  Error: %s\n", result.Error)
		} else {
			printVerbose("  Source: %s, Value: %s\n", result.Record.Source, result.Record.Value)
		}
	}

	return outputResults(results)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".xml"
}

func processFile(pipeline *processor.Pipeline, filePath string) *ProcessResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := &ProcessResult{
		File: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	if processor.DetectFormat(data) != processor.FormatXML {
		result.Error = "unsupported file format"
		return result
	}

	pipelineResult := pipeline.Process(ctx, data)
	if pipelineResult.Error != nil {
		result.Error = pipelineResult.Error.Error()
		return result
	}

	result.Record = pipelineResult.Record
	result.Taxes = pipelineResult.Taxes
	result.Report = pipelineResult.Report

	return result
}

func outputResults(results []*ProcessResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*ProcessResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*ProcessResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSOURCE\tNUMBER\tDATE\tVALUE\tICMS\tLANE\tVALID")
	fmt.Fprintln(tw, "----\t------\t------\t----\t-----\t----\t----\t-----")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		if r.Record != nil {
			lane := ""
			if r.Record.Origin != "" || r.Record.Destination != "" {
				lane = fmt.Sprintf("%s->%s", r.Record.Origin, r.Record.Destination)
			}
			valid := ""
			if r.Report != nil {
				valid = fmt.Sprintf("%t", r.Report.Valid)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.File,
				r.Record.Source,
				r.Record.Number,
				r.Record.Date.Format("2006-01-02"),
				r.Record.Value.StringFixed(2),
				r.Record.ICMSValue.StringFixed(2),
				lane,
				valid,
			)
		}
	}

	return tw.Flush()
}

func outputCSV(w *os.File, results []*ProcessResult) error {
	fmt.Fprintln(w, "file,source,number,date,value,origin,destination,icms,pis,cofins,valid,error")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "%s,,,,,,,,,,,%s\n", r.File, escapeCSV(r.Error))
			continue
		}

		if r.Record != nil {
			valid := ""
			if r.Report != nil {
				valid = fmt.Sprintf("%t", r.Report.Valid)
			}
			fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,%s,\n",
				r.File,
				r.Record.Source,
				escapeCSV(r.Record.Number),
				r.Record.Date.Format("2006-01-02"),
				r.Record.Value.StringFixed(2),
				r.Record.Origin,
				r.Record.Destination,
				r.Record.ICMSValue.StringFixed(2),
				r.Record.PISValue.StringFixed(2),
				r.Record.COFINSValue.StringFixed(2),
				valid,
			)
		}
	}

	return nil
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}

// ProcessResult holds the result of processing a single file
type ProcessResult struct {
	File   string            `json:"file"`
	Record *model.Record     `json:"record,omitempty"`
	Taxes  *tax.Breakdown    `json:"taxes,omitempty"`
	Report *validator.Report `json:"report,omitempty"`
	Error  string            `json:"error,omitempty"`
}
