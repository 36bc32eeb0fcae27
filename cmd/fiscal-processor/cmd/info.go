package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/processor"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about fiscal files",
	Long: `Display information about fiscal XML files without full processing.

Shows:
  - Detected file format
  - Detected document schema (CT-e, NFS-e)
  - File metadata

Examples:
  fiscal-processor info cte.xml
  fiscal-processor info *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	pipeline := processor.NewPipeline()
	for _, file := range files {
		printFileInfo(pipeline, file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(pipeline *processor.Pipeline, filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	format := processor.DetectFormat(data)
	fmt.Printf("  Format: %s\n", format)

	if format == processor.FormatXML {
		source := model.SourceUnknown
		if detected, err := pipeline.Detect(data); err == nil {
			source = detected
		}
		fmt.Printf("  Schema: %s\n", schemaName(source))

		if preview := getPreview(string(data), 200); preview != "" {
			fmt.Printf("  Preview: %s\n", preview)
		}
	}
}

func schemaName(s model.Source) string {
	switch s {
	case model.SourceCTe:
		return "CT-e (freight manifest)"
	case model.SourceNFSe:
		return "NFS-e (service invoice)"
	default:
		return "Unknown"
	}
}

func getPreview(content string, maxLen int) string {
	// Remove XML declaration
	if idx := strings.Index(content, "?>"); idx >= 0 {
		content = content[idx+2:]
	}

	content = strings.TrimSpace(content)
	content = strings.ReplaceAll(content, "\n", " ")
	content = strings.ReplaceAll(content, "\t", " ")

	for strings.Contains(content, "  ") {
		content = strings.ReplaceAll(content, "  ", " ")
	}

	// Truncate on runes so a multibyte character is never split
	runes := []rune(content)
	if len(runes) > maxLen {
		content = string(runes[:maxLen]) + "..."
	}

	return content
}
