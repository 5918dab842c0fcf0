package main

import (
	"context"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/export"
)

// newExporter builds the export pipeline described by cfg. outDir overrides cfg.OutputDir
// for the file store when set.
func newExporter(ctx context.Context, cfg *config.Config, outDir string) (*export.Exporter, error) {
	store, err := newArtifactStore(ctx, cfg, outDir)
	if err != nil {
		return nil, err
	}
	capturer := export.NewChromeCapturer(cfg.ChromePath, cfg.CaptureScale, cfg.CaptureTimeout.Duration)
	return export.NewExporter(capturer, store), nil
}

func newArtifactStore(ctx context.Context, cfg *config.Config, outDir string) (export.ArtifactStore, error) {
	if cfg.ArtifactStore == config.StoreMinIO {
		return export.NewMinioStore(ctx, cfg.MinIO)
	}
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	return export.NewFileStore(outDir), nil
}
