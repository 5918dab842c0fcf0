package main

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/spf13/cobra"
)

func newValidateCmd(_ *app) *cobra.Command {
	var inFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a document against the schema and lint its contents",
		Long:  "Validates the document JSON against the embedded schema, then lints emails, URLs, month dates and enum values.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if err := schemas.ValidateDocumentFile(inFile); err != nil {
				var validationErr *schemas.ValidationError
				if errors.As(err, &validationErr) {
					_, _ = fmt.Fprintf(out, "Validation failed: %d schema error(s)\n", len(validationErr.Errors))
					for _, fe := range validationErr.Errors {
						_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
					}
					return fmt.Errorf("document does not match schema")
				}
				return err
			}

			doc, err := readDocument(inFile)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				var lintErrs validator.ValidationErrors
				if !errors.As(err, &lintErrs) {
					return err
				}
				_, _ = fmt.Fprintf(out, "Validation failed: %d lint error(s)\n", len(lintErrs))
				for _, fe := range lintErrs {
					_, _ = fmt.Fprintf(out, "  - %s: %s %s\n", fe.Namespace(), fe.Tag(), fe.Param())
				}
				return fmt.Errorf("document has lint errors")
			}

			_, _ = fmt.Fprintln(out, "Validation passed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
