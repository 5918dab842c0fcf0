package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/spf13/cobra"
)

func newPreviewCmd(_ *app) *cobra.Command {
	var inFile, outFile string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the HTML preview of a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(inFile)
			if err != nil {
				return err
			}

			html, err := rendering.RenderDocument(doc)
			if err != nil {
				return err
			}

			if outFile == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), html)
				return nil
			}
			if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}

			sections := rendering.BuildPreview(doc).Sections()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", outFile)
			if len(sections) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sections: %s\n", strings.Join(sections, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the HTML here instead of stdout")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
