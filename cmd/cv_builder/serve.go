package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes registration, login, document editing, preview and PDF export.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			passwordConfig, err := config.NewPasswordConfig()
			if err != nil {
				return fmt.Errorf("failed to create password config: %w", err)
			}
			jwtConfig, err := config.NewJWTConfigOrEphemeral()
			if err != nil {
				return fmt.Errorf("failed to create JWT config: %w", err)
			}

			store, err := session.OpenStore(cmd.Context(), cfg.UserStoreDSN)
			if err != nil {
				return fmt.Errorf("failed to open user store: %w", err)
			}

			exporter, err := newExporter(cmd.Context(), cfg, "")
			if err != nil {
				_ = store.Close()
				return err
			}

			srv, err := server.New(server.Config{
				Port:          cfg.Port,
				MaxPhotoBytes: cfg.MaxPhotoBytes,
			}, server.Deps{
				Store:    store,
				Exporter: exporter,
				Password: passwordConfig,
				JWT:      jwtConfig,
			})
			if err != nil {
				_ = store.Close()
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (default from config)")
	return cmd
}
