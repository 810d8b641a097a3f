package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algo-rhythm/portfolio-deck/internal/driveapi"
	"github.com/algo-rhythm/portfolio-deck/internal/gauth"
	"github.com/algo-rhythm/portfolio-deck/internal/pipeline"
	"github.com/algo-rhythm/portfolio-deck/internal/server"
	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
)

var (
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating portfolio decks.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Get access token from environment
	accessToken := os.Getenv("GOOGLE_ACCESS_TOKEN")
	if accessToken == "" {
		return fmt.Errorf("GOOGLE_ACCESS_TOKEN environment variable is required")
	}

	ts := gauth.StaticTokenSource(accessToken)

	slidesClient, err := slidesapi.New(ctx, ts)
	if err != nil {
		return fmt.Errorf("failed to create Slides client: %w", err)
	}
	driveSvc, err := driveapi.New(ctx, ts)
	if err != nil {
		return fmt.Errorf("failed to create Drive client: %w", err)
	}
	auth, err := gauth.New(ctx, ts)
	if err != nil {
		return fmt.Errorf("failed to create auth client: %w", err)
	}

	generator := &pipeline.Generator{
		Slides: slidesClient,
		Drive:  driveSvc,
		Auth:   auth,
	}

	cfg := server.Config{
		Addr:        serveAddr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	srv, err := server.New(cfg, generator, driveSvc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
