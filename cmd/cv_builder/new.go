package main

import (
	"fmt"
	"os"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

func newNewCmd(_ *app) *cobra.Command {
	var (
		outFile string
		name    string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty CV document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(outFile); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", outFile)
				}
			}

			doc := types.NewDocument()
			doc.PersonalInfo.FullName = name
			if err := writeDocument(outFile, doc); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Path to the new document JSON file (required)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Full name to start with")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
