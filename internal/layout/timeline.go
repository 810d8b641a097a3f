package layout

import (
	"context"
	"fmt"

	"google.golang.org/api/slides/v1"

	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// Overview slide geometry. The numbered list runs in one column, or in
// two side-by-side columns once it grows past the split threshold.
const (
	overviewTitleX    = 50.0
	overviewTitleY    = 50.0
	overviewTitleW    = 500.0
	overviewTitleH    = 60.0
	overviewTitleFont = 28.0

	overviewListY     = 150.0
	overviewRowH      = 30.0
	overviewRowStep   = 40.0
	overviewSingleX   = 80.0
	overviewSingleW   = 450.0
	overviewLeftX     = 50.0
	overviewRightX    = 300.0
	overviewColumnW   = 230.0
	overviewSplitFrom = 5
)

const overviewTitle = "타임라인"

// TimelineEngine orders experiences by parsed start date and prefixes
// the deck with a numbered overview slide.
type TimelineEngine struct {
	engine
}

func (e *TimelineEngine) Layout(ctx context.Context, presentationID string, pool *Pool, experiences []types.ExperienceRecord, style types.ThemeStyle) error {
	sorted := SortByStartDate(experiences)

	overviewID, err := pool.Next()
	if err != nil {
		return err
	}
	touched := []string{overviewID}

	e.report(progress.Event{
		Percent: progress.SlideProgress(0, len(sorted)),
		Message: "타임라인 개요 슬라이드 생성중",
	})
	if _, err := e.client.BatchUpdate(ctx, presentationID, e.overviewRequests(overviewID, sorted, style.TextColor)); err != nil {
		return err
	}

	total := len(sorted)
	for i, exp := range sorted {
		e.report(progress.Event{
			Percent:      progress.SlideProgress(i, total),
			Message:      fmt.Sprintf("타임라인 슬라이드 %d 생성중", i+1),
			CurrentSlide: i + 1,
			TotalSlides:  total,
		})

		for _, chunk := range imageChunks(exp.ImageURLs) {
			slideID, err := pool.Next()
			if err != nil {
				return err
			}
			touched = append(touched, slideID)

			reqs := textBlockRequests(slideID, exp, style.TextColor)
			for j, url := range chunk {
				b := box{
					x: imageColumnX,
					y: imageColumnY + float64(j)*(timelineImageH+imageSpacing),
					w: timelineImageW,
					h: timelineImageH,
				}
				reqs = append(reqs, imageRequests(slideID, url, b)...)
			}
			if _, err := e.client.BatchUpdate(ctx, presentationID, reqs); err != nil {
				return err
			}
		}
	}

	return e.applyBackground(ctx, presentationID, touched, style.BackgroundColor)
}

// overviewRequests builds the numbered timeline list. With
// overviewSplitFrom or more entries the list splits into two columns,
// the first ceil(n/2) entries on the left.
func (e *TimelineEngine) overviewRequests(slideID string, sorted []types.ExperienceRecord, color types.RGB) []*slides.Request {
	reqs := styledTextBoxRequests(slideID, overviewTitle, box{overviewTitleX, overviewTitleY, overviewTitleW, overviewTitleH}, overviewTitleFont, color)

	n := len(sorted)
	leftCount := n
	if n >= overviewSplitFrom {
		leftCount = (n + 1) / 2
	}

	for i, exp := range sorted {
		entry := fmt.Sprintf("%d. %s (%s)", i+1, exp.Title, exp.Period)

		var b box
		switch {
		case n < overviewSplitFrom:
			b = box{overviewSingleX, overviewListY + float64(i)*overviewRowStep, overviewSingleW, overviewRowH}
		case i < leftCount:
			b = box{overviewLeftX, overviewListY + float64(i)*overviewRowStep, overviewColumnW, overviewRowH}
		default:
			b = box{overviewRightX, overviewListY + float64(i-leftCount)*overviewRowStep, overviewColumnW, overviewRowH}
		}
		reqs = append(reqs, textBoxRequests(slideID, entry, b, color)...)
	}
	return reqs
}
