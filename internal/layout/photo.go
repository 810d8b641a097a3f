package layout

import (
	"context"
	"fmt"

	"google.golang.org/api/slides/v1"

	"github.com/algo-rhythm/portfolio-deck/internal/imaging"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// Photo slide geometry. Landscape images get the stacked layout with
// the image centered and the description below; portrait images move to
// the right so the description can sit beside them.
const (
	photoTitleH    = 50.0
	photoTitleFont = 20.0

	photoPeriodW = 300.0
	photoPeriodH = 30.0

	landscapeImageX = 100.0
	landscapeImageY = 150.0
	landscapeImageW = 400.0
	landscapeImageH = 300.0

	landscapeDescX = 50.0
	landscapeDescY = 470.0
	landscapeDescW = 400.0
	landscapeDescH = 60.0

	portraitImageX = 350.0
	portraitImageY = 130.0
	portraitImageW = 250.0
	portraitImageH = 330.0

	portraitDescX = 50.0
	portraitDescY = 150.0
	portraitDescW = 280.0
	portraitDescH = 200.0
)

// PhotoEngine dedicates one slide to every image. Experiences without
// images are absent from the output entirely.
type PhotoEngine struct {
	engine
	prober *imaging.Prober
}

func (e *PhotoEngine) Layout(ctx context.Context, presentationID string, pool *Pool, experiences []types.ExperienceRecord, style types.ThemeStyle) error {
	var withImages []types.ExperienceRecord
	var urls []string
	for _, exp := range experiences {
		if exp.HasImages() {
			withImages = append(withImages, exp)
			urls = append(urls, exp.ImageURLs...)
		}
	}
	totalImages := len(urls)
	if totalImages == 0 {
		return nil
	}

	// Orientation decisions need natural pixel dimensions, probed up
	// front so placement itself stays synchronous.
	dims := e.prober.ProbeAll(ctx, urls)

	var touched []string
	slideCount := 0
	for _, exp := range withImages {
		for _, url := range exp.ImageURLs {
			slideID, err := pool.Next()
			if err != nil {
				return err
			}
			touched = append(touched, slideID)

			e.report(progress.Event{
				Percent:      progress.SlideProgress(slideCount, totalImages),
				Message:      fmt.Sprintf("사진 슬라이드 %d 생성중", slideCount+1),
				CurrentSlide: slideCount + 1,
				TotalSlides:  totalImages,
				CurrentImage: slideCount + 1,
				TotalImages:  totalImages,
			})

			reqs := e.photoSlideRequests(slideID, exp, url, dims[slideCount], style.TextColor)
			if _, err := e.client.BatchUpdate(ctx, presentationID, reqs); err != nil {
				return err
			}
			slideCount++
		}
	}

	return e.applyBackground(ctx, presentationID, touched, style.BackgroundColor)
}

func (e *PhotoEngine) photoSlideRequests(slideID string, exp types.ExperienceRecord, url string, d imaging.Dimensions, color types.RGB) []*slides.Request {
	reqs := styledTextBoxRequests(slideID, exp.Title, box{titleBoxX, titleBoxY, titleBoxW, photoTitleH}, photoTitleFont, color)
	reqs = append(reqs, textBoxRequests(slideID, exp.Period, box{periodBoxX, periodBoxY, photoPeriodW, photoPeriodH}, color)...)

	imageBox := box{landscapeImageX, landscapeImageY, landscapeImageW, landscapeImageH}
	descBox := box{landscapeDescX, landscapeDescY, landscapeDescW, landscapeDescH}
	if d.IsPortrait() {
		imageBox = box{portraitImageX, portraitImageY, portraitImageW, portraitImageH}
		descBox = box{portraitDescX, portraitDescY, portraitDescW, portraitDescH}
	}

	reqs = append(reqs, imageRequests(slideID, url, imageBox)...)
	if exp.Description != "" {
		reqs = append(reqs, textBoxRequests(slideID, exp.Description, descBox, color)...)
	}
	return reqs
}
