package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/algo-rhythm/portfolio-deck/internal/config"
	"github.com/algo-rhythm/portfolio-deck/internal/driveapi"
	"github.com/algo-rhythm/portfolio-deck/internal/gauth"
	"github.com/algo-rhythm/portfolio-deck/internal/observability"
	"github.com/algo-rhythm/portfolio-deck/internal/pipeline"
	"github.com/algo-rhythm/portfolio-deck/internal/plan"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/sheetsapi"
	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
	"github.com/algo-rhythm/portfolio-deck/internal/theme"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Generate a portfolio deck from spreadsheet experience data",
	Long: `Reads experience records from a Google Spreadsheet and builds a Google Slides
deck using the selected template: basic, timeline or photo.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerateCmd,
}

var (
	genConfigPath    string
	genAccessToken   string
	genSpreadsheetID string
	genTitle         string
	genTemplate      string
	genTheme         string
	genBackgroundHex string
	genTextHex       string
	genBackgroundImg string
	genVerbose       bool
	genDatabaseURL   string
)

func init() {
	// Config file flag (processed first)
	generateCommand.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCommand.Flags().StringVar(&genAccessToken, "access-token", "", "Google OAuth access token (optional, defaults to GOOGLE_ACCESS_TOKEN env var)")
	generateCommand.Flags().StringVarP(&genSpreadsheetID, "spreadsheet", "s", "", "Spreadsheet ID holding the experience records")
	generateCommand.Flags().StringVar(&genTitle, "title", "", "Deck title")
	generateCommand.Flags().StringVarP(&genTemplate, "template", "t", "", "Slide template: basic, timeline or photo")
	generateCommand.Flags().StringVar(&genTheme, "theme", "", "Color theme name, or \"custom\" with --background-hex/--text-hex")
	generateCommand.Flags().StringVar(&genBackgroundHex, "background-hex", "", "Custom theme background color (6 hex digits)")
	generateCommand.Flags().StringVar(&genTextHex, "text-hex", "", "Custom theme text color (6 hex digits)")
	generateCommand.Flags().StringVar(&genBackgroundImg, "background-img", "", "Path to an image stretched across all slides")
	generateCommand.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for run persistence
	generateCommand.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCommand)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if genVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", genConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("access-token") {
		cfg.AccessToken = genAccessToken
	}
	if cmd.Flags().Changed("spreadsheet") {
		cfg.SpreadsheetID = genSpreadsheetID
	}
	if cmd.Flags().Changed("title") {
		cfg.Title = genTitle
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = genTemplate
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = genTheme
	}
	if cmd.Flags().Changed("background-hex") {
		cfg.BackgroundHex = genBackgroundHex
	}
	if cmd.Flags().Changed("text-hex") {
		cfg.TextHex = genTextHex
	}
	if cmd.Flags().Changed("background-img") {
		cfg.BackgroundImg = genBackgroundImg
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Template: "basic",
		Title:    "나의 포트폴리오",
	}
	cfg = cfg.MergeWithDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Access token handling
	if cfg.AccessToken == "" {
		cfg.AccessToken = os.Getenv("GOOGLE_ACCESS_TOKEN")
	}
	if cfg.AccessToken == "" {
		return fmt.Errorf("GOOGLE_ACCESS_TOKEN environment variable or --access-token flag is required")
	}
	if cfg.SpreadsheetID == "" {
		return fmt.Errorf("--spreadsheet is required (via flag or config)")
	}

	// Step 5: Database URL handling (optional; runs persist when set)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	ts := gauth.StaticTokenSource(cfg.AccessToken)

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
	source, err := sheetsapi.New(ctx, ts, cfg.SpreadsheetID)
	if err != nil {
		return fmt.Errorf("failed to create Sheets client: %w", err)
	}

	fmt.Printf("Step 1/3: Loading experiences from spreadsheet %s\n", cfg.SpreadsheetID)
	experiences, err := source.ListExperiences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load experiences: %w", err)
	}
	fmt.Printf("Loaded %d experience record(s)\n", len(experiences))

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintExperiences(experiences)
		kind, _ := types.ParseTemplateKind(cfg.Template)
		printer.PrintPlan(plan.Compute(kind, experiences))
		printer.PrintTheme(theme.Resolve(cfg.ThemeSelector()))
	}

	opts := pipeline.Options{
		Template:    types.TemplateKind(cfg.Template),
		Theme:       cfg.ThemeSelector(),
		Title:       cfg.Title,
		Experiences: experiences,
		DatabaseURL: cfg.DatabaseURL,
		Verbose:     cfg.Verbose,
		OnProgress: progress.SinkFunc(func(e progress.Event) {
			fmt.Printf("[%3.0f%%] %s\n", e.Percent, e.Message)
		}),
	}

	if cfg.BackgroundImg != "" {
		f, err := os.Open(cfg.BackgroundImg)
		if err != nil {
			return fmt.Errorf("failed to open background image: %w", err)
		}
		defer f.Close()
		opts.BackgroundImage = &pipeline.BackgroundImage{
			Name:    filepath.Base(cfg.BackgroundImg),
			Content: f,
		}
	}

	generator := &pipeline.Generator{
		Slides: slidesClient,
		Drive:  driveSvc,
		Auth:   auth,
	}

	fmt.Printf("Step 2/3: Generating deck %q with template %s\n", cfg.Title, cfg.Template)
	result, err := generator.Generate(ctx, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Step 3/3: Done\n")
	fmt.Printf("Created %s with %d slide(s)\n", result.FileName, len(result.Slides))
	fmt.Printf("https://docs.google.com/presentation/d/%s/edit\n", result.PresentationID)
	return nil
}
