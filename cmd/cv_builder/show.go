package main

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
)

func newShowCmd(_ *app) *cobra.Command {
	var inFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a summary of a document",
		Long:  "Prints the personal info and a per-section outline of the document, followed by any lint issues. Lint issues are reported but do not fail the command.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(inFile)
			if err != nil {
				return err
			}

			printer := observability.NewPrinter(cmd.OutOrStdout())
			printer.PrintPersonalInfo(doc.PersonalInfo)
			printer.PrintSections(doc)

			if err := doc.Validate(); err != nil {
				var lintErrs validator.ValidationErrors
				if !errors.As(err, &lintErrs) {
					return err
				}
				issues := make([]string, 0, len(lintErrs))
				for _, fe := range lintErrs {
					issues = append(issues, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
				}
				printer.PrintLintIssues(issues)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
