package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/inspect"
	"github.com/spf13/cobra"
)

func newInspectCmd(_ *app) *cobra.Command {
	var pdfFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report the page count of an exported PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := inspect.InspectFile(pdfFile)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d page(s), %d bytes\n", report.Path, report.Pages, report.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfFile, "pdf", "", "Path to the PDF (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("pdf")
	return cmd
}
