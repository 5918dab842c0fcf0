package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/document"
	"github.com/jonathan/cv-builder/internal/logger"
	"github.com/jonathan/cv-builder/internal/photo"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

// personalSection selects PersonalInfo in "set".
const personalSection = "personal"

func newAddCmd(_ *app) *cobra.Command {
	var inFile, section string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a blank entry to a section and print its id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sec, err := document.ParseSection(section)
			if err != nil {
				return err
			}

			var id string
			ed := document.NewEditor(nil)
			if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
				doc, id = ed.AddEntry(doc, sec)
				return doc, nil
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section: "+sectionList())
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func newRemoveCmd(_ *app) *cobra.Command {
	var inFile, section, id string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an entry from a section",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sec, err := document.ParseSection(section)
			if err != nil {
				return err
			}

			ed := document.NewEditor(nil)
			found := false
			if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
				found = document.HasEntry(doc, sec, id)
				return ed.RemoveEntry(doc, sec, id), nil
			}); err != nil {
				return err
			}

			if !found {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No %s entry with id %s; nothing removed\n", sec, id)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s entry %s\n", sec, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section: "+sectionList())
	cmd.Flags().StringVar(&id, "id", "", "Entry id (required)")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newSetCmd(_ *app) *cobra.Command {
	var inFile, section, id, field, value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set one field of an entry, or of personal info with --section personal",
		Example: `  cv_builder set -i cv.json -s skills --id 3f2a --field level --value Expert
  cv_builder set -i cv.json -s personal --field fullName --value "Ada Lovelace"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed := document.NewEditor(nil)

			if strings.EqualFold(strings.TrimSpace(section), personalSection) {
				if err := document.CheckPersonalField(field); err != nil {
					return fmt.Errorf("%w (fields: %s)", err, strings.Join(document.PersonalFields(), ", "))
				}
				if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
					return ed.WithPersonalField(doc, field, value), nil
				}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set personal %s\n", field)
				return nil
			}

			sec, err := document.ParseSection(section)
			if err != nil {
				return err
			}
			if err := document.CheckField(sec, field); err != nil {
				return fmt.Errorf("%w (fields: %s)", err, strings.Join(document.Fields(sec), ", "))
			}
			if id == "" {
				return fmt.Errorf("--id is required for section %s", sec)
			}
			if err := document.CheckValue(field, value); err != nil {
				return err
			}

			if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
				if !document.HasEntry(doc, sec, id) {
					return doc, fmt.Errorf("no %s entry with id %s", sec, id)
				}
				return ed.UpdateEntry(doc, sec, id, field, value), nil
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s %s %s\n", sec, id, field)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVarP(&section, "section", "s", "", "Section: "+sectionList()+" or "+personalSection)
	cmd.Flags().StringVar(&id, "id", "", "Entry id (not used with --section personal)")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Field name in JSON form, e.g. startDate (required)")
	cmd.Flags().StringVarP(&value, "value", "v", "", "New value; true/false for current")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func newPhotoCmd(a *app) *cobra.Command {
	var inFile, imageFile string
	var clearPhoto bool

	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Set or clear the profile photo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearPhoto == (imageFile != "") {
				return fmt.Errorf("use exactly one of --image or --clear")
			}

			ed := document.NewEditor(nil)
			if clearPhoto {
				if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
					return ed.WithPhoto(doc, ""), nil
				}); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Photo removed")
				return nil
			}

			dataURL, ok, err := photo.IngestFile(imageFile, a.cfg.MaxPhotoBytes)
			if err != nil {
				return err
			}
			if !ok {
				logger.Warn().Str("file", imageFile).Msg("photo ignored")
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ignored %s: not an image or larger than %d bytes\n", imageFile, a.cfg.MaxPhotoBytes)
				return nil
			}

			if _, err := editDocument(inFile, func(doc types.Document) (types.Document, error) {
				return ed.WithPhoto(doc, dataURL), nil
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Photo set from %s\n", imageFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inFile, "in", "i", "", "Path to the document JSON file (required)")
	cmd.Flags().StringVar(&imageFile, "image", "", "Image file to use as the photo")
	cmd.Flags().BoolVar(&clearPhoto, "clear", false, "Remove the photo")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func sectionList() string {
	names := make([]string, 0, len(document.Sections))
	for _, s := range document.Sections {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
