package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
)

// exporterFactory builds the Exporter for the export command; tests replace it.
var exporterFactory = newExporter

func newExportCmd(a *app) *cobra.Command {
	var inFile, outDir, filename string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a document to a paginated A4 PDF",
		Long:  "Renders the preview, captures it with headless Chrome and tiles the capture over as many A4 pages as it needs. Requires Chrome or Chromium.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(inFile)
			if err != nil {
				return err
			}

			exporter, err := exporterFactory(cmd.Context(), a.cfg, outDir)
			if err != nil {
				return err
			}

			artifact, err := exporter.Export(cmd.Context(), doc, filename)
			if err != nil {
				return err
			}

			if verbose {
				observability.NewPrinter(cmd.OutOrStdout()).PrintArtifact(observability.ArtifactSummary{
					Filename: artifact.Filename,
					Location: artifact.Location,
					Pages:    artifact.Pages,
					Bytes:    artifact.Bytes,
				})
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d page(s), %d bytes)\n", artifact.Filename, artifact.Pages, artifact.Bytes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", artifact.Location)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the PDF (file store only; default from config)")
	cmd.Flags().StringVar(&filename, "filename", "", "PDF file name (default derived from the full name, e.g. Ada_Lovelace_CV.pdf)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary box instead of the one-line result")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

