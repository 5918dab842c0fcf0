package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/types"
)

// readDocument loads a Document from a JSON file.
func readDocument(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read document: %w", err)
	}

	doc := types.NewDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument saves doc as indented JSON, replacing path in one rename.
func writeDocument(path string, doc types.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// editDocument reads path, applies edit and writes the result back.
func editDocument(path string, edit func(types.Document) (types.Document, error)) (types.Document, error) {
	doc, err := readDocument(path)
	if err != nil {
		return types.Document{}, err
	}
	doc, err = edit(doc)
	if err != nil {
		return types.Document{}, err
	}
	return doc, writeDocument(path, doc)
}
