package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/algo-rhythm/portfolio-deck/internal/driveapi"
	"github.com/algo-rhythm/portfolio-deck/internal/gauth"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated decks",
	Long:  `Lists the presentations in the Drive PPT folder, newest first.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	accessToken := os.Getenv("GOOGLE_ACCESS_TOKEN")
	if accessToken == "" {
		return fmt.Errorf("GOOGLE_ACCESS_TOKEN environment variable is required")
	}

	driveSvc, err := driveapi.New(ctx, gauth.StaticTokenSource(accessToken))
	if err != nil {
		return fmt.Errorf("failed to create Drive client: %w", err)
	}

	portfolio, err := driveSvc.EnsurePortfolioFolder(ctx)
	if err != nil {
		return fmt.Errorf("failed to open portfolio folder: %w", err)
	}

	pptFolder, err := driveSvc.FindFolder(ctx, driveapi.PPTFolderName, portfolio.ID)
	if err != nil {
		return fmt.Errorf("failed to look up PPT folder: %w", err)
	}
	if pptFolder == nil {
		fmt.Println("No decks generated yet.")
		return nil
	}

	decks, err := driveSvc.ListPresentations(ctx, pptFolder.ID)
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}
	if len(decks) == 0 {
		fmt.Println("No decks generated yet.")
		return nil
	}

	for _, d := range decks {
		if d.CreatedTime != "" {
			fmt.Printf("%s  %s  %s\n", d.ID, d.CreatedTime, d.Name)
			continue
		}
		fmt.Printf("%s  %s\n", d.ID, d.Name)
	}
	return nil
}
