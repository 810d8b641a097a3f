// Package pipeline provides the high-level orchestration for deck
// generation: naming, cover, slide provisioning, layout and finishing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/slides/v1"

	"github.com/algo-rhythm/portfolio-deck/internal/db"
	"github.com/algo-rhythm/portfolio-deck/internal/driveapi"
	"github.com/algo-rhythm/portfolio-deck/internal/gauth"
	"github.com/algo-rhythm/portfolio-deck/internal/imaging"
	"github.com/algo-rhythm/portfolio-deck/internal/layout"
	"github.com/algo-rhythm/portfolio-deck/internal/plan"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
	"github.com/algo-rhythm/portfolio-deck/internal/theme"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// ErrCancelled is returned when the run is declined before any remote
// mutation: an empty title means the user backed out, not an error the
// caller should alert on.
var ErrCancelled = errors.New("generation cancelled")

// failurePrefix fronts every fatal generation error message.
const failurePrefix = "생성 실패"

// BackgroundImage is an optional image stretched across every slide.
type BackgroundImage struct {
	Name    string
	Content io.Reader
}

// Storage is the Drive surface the pipeline needs. *driveapi.Service
// implements it.
type Storage interface {
	EnsurePortfolioFolder(ctx context.Context) (driveapi.Folder, error)
	EnsureFolder(ctx context.Context, name, parentID string) (driveapi.Folder, error)
	FindFolder(ctx context.Context, name, parentID string) (*driveapi.Folder, error)
	ListFilesInFolder(ctx context.Context, folderID string) ([]driveapi.FileInfo, error)
	MoveFile(ctx context.Context, fileID, folderID string) error
	UploadImage(ctx context.Context, name string, content io.Reader, folderID string) (string, error)
}

// Options holds the inputs for one generation run.
type Options struct {
	Template    types.TemplateKind
	Theme       types.ThemeSelector
	Title       string
	Experiences []types.ExperienceRecord

	BackgroundImage *BackgroundImage

	// OnProgress receives status events during execution.
	OnProgress progress.Sink

	// ReloadHistory is invoked once during finalization so the caller
	// can refresh its list of generated decks.
	ReloadHistory func(ctx context.Context)

	// DatabaseURL enables run persistence when set. Connection failure
	// downgrades to a warning.
	DatabaseURL string

	Verbose bool

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of a successful run.
type Result struct {
	PresentationID string
	FileName       string
	Slides         []*slides.Page
}

// Generator wires the collaborators for deck generation.
type Generator struct {
	Slides slidesapi.Client
	Drive  Storage
	Auth   gauth.Authenticator
	Prober *imaging.Prober
}

// Generate runs the full pipeline. It returns ErrCancelled when the
// title is empty; every other failure carries the 생성 실패 prefix. The
// created presentation is never cleaned up on failure, matching the
// remote service's lack of transactional semantics.
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	// Step 1/8: naming. An empty title is a user cancellation.
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return nil, ErrCancelled
	}

	fmt.Printf("Step 1/8: Naming deck...\n")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	baseFileName := driveapi.DateQualifiedName(title, now())
	coverTitle := driveapi.CleanTitle(title)

	report := func(e progress.Event) {
		if opts.OnProgress != nil {
			opts.OnProgress.Report(e)
		}
	}
	report(progress.Event{Percent: 0, Message: "PPT 생성을 시작합니다..."})

	// Step 2/8: authenticating. Reject before any remote mutation.
	fmt.Printf("Step 2/8: Checking authentication...\n")
	if g.Auth == nil || !g.Auth.IsAuthenticated(ctx) {
		return nil, fmt.Errorf("%s: %w", failurePrefix, &gauth.AuthError{Reason: "다시 로그인해주세요"})
	}

	database, runID := g.connectDatabase(ctx, opts)
	defer database.Close()
	if database != nil {
		report = func(e progress.Event) {
			if opts.OnProgress != nil {
				opts.OnProgress.Report(e)
			}
			_ = database.SaveProgressEvent(ctx, runID, e)
		}
	}

	result, err := g.generate(ctx, opts, title, baseFileName, coverTitle, database, runID, report)
	if err != nil {
		_ = database.CompleteRun(ctx, runID, db.StatusFailed, err.Error())
		return nil, fmt.Errorf("%s: %w", failurePrefix, err)
	}

	_ = database.CompleteRun(ctx, runID, db.StatusCompleted, "")
	return result, nil
}

func (g *Generator) connectDatabase(ctx context.Context, opts Options) (*db.DB, uuid.UUID) {
	if opts.DatabaseURL == "" {
		return nil, uuid.Nil
	}
	database, err := db.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		fmt.Printf("Warning: Failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without run persistence...\n")
		return nil, uuid.Nil
	}
	runID, err := database.CreateRun(ctx, opts.Title, string(opts.Template), opts.Theme.Name)
	if err != nil {
		fmt.Printf("Warning: Failed to create database run: %v\n", err)
	}
	return database, runID
}

func (g *Generator) generate(ctx context.Context, opts Options, title, baseFileName, coverTitle string, database *db.DB, runID uuid.UUID, report func(progress.Event)) (*Result, error) {
	// Resolve a collision-free filename against the PPT folder. Lookup
	// failure falls back to the base name; the worst case is a
	// duplicate name, which Drive allows.
	fileName, pptFolder := g.resolveFileName(ctx, baseFileName)

	fmt.Printf("Step 3/8: Creating presentation %q...\n", fileName)
	report(progress.Event{Percent: 10, Message: "PPT 파일을 생성하고 있습니다..."})
	presentationID, err := g.Slides.CreatePresentation(ctx, fileName)
	if err != nil {
		return nil, err
	}
	_ = database.SetPresentationID(ctx, runID, presentationID)

	if pptFolder != nil {
		if err := g.Drive.MoveFile(ctx, presentationID, pptFolder.ID); err != nil {
			fmt.Printf("Warning: Failed to move presentation into PPT folder: %v\n", err)
		}
	}

	fmt.Printf("Step 4/8: Building cover slide...\n")
	report(progress.Event{Percent: 20, Message: "표지 슬라이드 생성중"})
	coverID, err := g.buildCover(ctx, presentationID, coverTitle)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Step 5/8: Planning and provisioning slides...\n")
	slidePlan := plan.Compute(opts.Template, opts.Experiences)
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Plan: %d content slides for %d experiences (%s)\n",
			slidePlan.TotalSlides, len(opts.Experiences), opts.Template)
	}
	slideIDs, err := g.Slides.CreateSlides(ctx, presentationID, slidePlan.TotalSlides)
	if err != nil {
		return nil, err
	}

	fmt.Printf("Step 6/8: Running %s layout engine...\n", opts.Template)
	style := theme.Resolve(opts.Theme)
	engine, err := layout.ForTemplate(opts.Template, layout.Deps{
		Client: g.Slides,
		Sink:   progress.SinkFunc(report),
		Prober: g.Prober,
	})
	if err != nil {
		return nil, err
	}
	pool := layout.NewPool(slideIDs)
	if err := engine.Layout(ctx, presentationID, pool, opts.Experiences, style); err != nil {
		return nil, err
	}

	if opts.BackgroundImage != nil {
		fmt.Printf("Step 7/8: Applying background image...\n")
		report(progress.Event{Percent: 85, Message: "배경 이미지 적용중"})
		allSlides := slideIDs
		if coverID != "" {
			allSlides = append([]string{coverID}, slideIDs...)
		}
		if err := g.applyBackgroundImage(ctx, presentationID, allSlides, opts.BackgroundImage); err != nil {
			fmt.Printf("Warning: Failed to apply background image: %v\n", err)
		}
	}

	fmt.Printf("Step 8/8: Finalizing...\n")
	report(progress.Event{Percent: 95, Message: "최종 정리중"})
	final, err := g.Slides.GetPresentation(ctx, presentationID)
	if err != nil {
		return nil, err
	}
	if opts.ReloadHistory != nil {
		opts.ReloadHistory(ctx)
	}
	report(progress.Event{Percent: 100, Message: "PPT 생성 완료!"})

	return &Result{
		PresentationID: presentationID,
		FileName:       fileName,
		Slides:         final.Slides,
	}, nil
}

// resolveFileName scans the PPT folder for name collisions and returns
// the final filename plus the folder handle for later placement. Any
// Drive failure here is non-fatal.
func (g *Generator) resolveFileName(ctx context.Context, baseFileName string) (string, *driveapi.Folder) {
	portfolio, err := g.Drive.EnsurePortfolioFolder(ctx)
	if err != nil {
		fmt.Printf("Warning: Failed to resolve portfolio folder: %v\n", err)
		return baseFileName, nil
	}

	pptFolder, err := g.Drive.EnsureFolder(ctx, driveapi.PPTFolderName, portfolio.ID)
	if err != nil {
		fmt.Printf("Warning: Failed to resolve PPT folder: %v\n", err)
		return baseFileName, nil
	}

	files, err := g.Drive.ListFilesInFolder(ctx, pptFolder.ID)
	if err != nil {
		fmt.Printf("Warning: Failed to scan for name collisions: %v\n", err)
		return baseFileName, &pptFolder
	}

	var names []string
	for _, f := range driveapi.FilterPresentations(files) {
		names = append(names, f.Name)
	}
	return driveapi.NextAvailableName(baseFileName, names), &pptFolder
}

// buildCover writes the run title and account display name into the
// first title and body placeholders of the initial slide. Returns the
// cover slide's objectId, or "" when the deck has no initial slide.
func (g *Generator) buildCover(ctx context.Context, presentationID, coverTitle string) (string, error) {
	pres, err := g.Slides.GetPresentation(ctx, presentationID)
	if err != nil {
		return "", err
	}
	if len(pres.Slides) == 0 {
		return "", nil
	}
	cover := pres.Slides[0]

	displayName, err := g.Auth.AccountDisplayName(ctx)
	if err != nil || displayName == "" {
		fmt.Printf("Warning: Failed to fetch account name, using default: %v\n", err)
		displayName = gauth.DefaultDisplayName
	}

	var reqs []*slides.Request
	if id := slidesapi.FindFirstPlaceholder(cover, slidesapi.PlaceholderTitle); id != "" {
		reqs = append(reqs, &slides.Request{
			InsertText: &slides.InsertTextRequest{ObjectId: id, Text: coverTitle},
		})
	}
	if id := slidesapi.FindFirstPlaceholder(cover, slidesapi.PlaceholderBody); id != "" {
		reqs = append(reqs, &slides.Request{
			InsertText: &slides.InsertTextRequest{ObjectId: id, Text: displayName},
		})
	}
	if len(reqs) > 0 {
		if _, err := g.Slides.BatchUpdate(ctx, presentationID, reqs); err != nil {
			return "", err
		}
	}
	return cover.ObjectId, nil
}

// applyBackgroundImage uploads the image to the Drive image folder and
// stretches it across every slide in one grouped batch.
func (g *Generator) applyBackgroundImage(ctx context.Context, presentationID string, slideIDs []string, img *BackgroundImage) error {
	portfolio, err := g.Drive.EnsurePortfolioFolder(ctx)
	if err != nil {
		return err
	}
	imageFolder, err := g.Drive.EnsureFolder(ctx, driveapi.ImageFolderName, portfolio.ID)
	if err != nil {
		return err
	}
	url, err := g.Drive.UploadImage(ctx, img.Name, img.Content, imageFolder.ID)
	if err != nil {
		return err
	}
	_, err = g.Slides.BatchUpdate(ctx, presentationID, layout.BackgroundImageRequests(slideIDs, url))
	return err
}
