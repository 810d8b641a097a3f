package layout

import (
	"context"
	"fmt"

	"github.com/algo-rhythm/portfolio-deck/internal/plan"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// BasicEngine writes one slide per experience in original order, with
// overflow slides for experiences carrying more than two images. Every
// overflow slide repeats the full text block so each slide is
// self-describing.
type BasicEngine struct {
	engine
}

func (e *BasicEngine) Layout(ctx context.Context, presentationID string, pool *Pool, experiences []types.ExperienceRecord, style types.ThemeStyle) error {
	var touched []string
	total := len(experiences)

	for i, exp := range experiences {
		e.report(progress.Event{
			Percent:      progress.SlideProgress(i, total),
			Message:      fmt.Sprintf("슬라이드 %d 생성중", i+1),
			CurrentSlide: i + 1,
			TotalSlides:  total,
		})

		placed := 0
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
					y: imageColumnY + float64(j)*(basicImageH+imageSpacing),
					w: basicImageW,
					h: basicImageH,
				}
				reqs = append(reqs, imageRequests(slideID, url, b)...)
			}

			if len(chunk) > 0 {
				placed += len(chunk)
				e.report(progress.Event{
					Percent:      progress.SlideProgress(i, total),
					Message:      fmt.Sprintf("슬라이드 %d 이미지 삽입중", i+1),
					CurrentSlide: i + 1,
					TotalSlides:  total,
					CurrentImage: placed,
					TotalImages:  exp.ImageCount(),
				})
			}

			if _, err := e.client.BatchUpdate(ctx, presentationID, reqs); err != nil {
				return err
			}
		}
	}

	return e.applyBackground(ctx, presentationID, touched, style.BackgroundColor)
}

// imageChunks splits an image list into per-slide groups under the
// packing rule. A zero-image experience still yields one empty group,
// its lone text slide.
func imageChunks(urls []string) [][]string {
	if len(urls) <= plan.MaxImagesPerSlide {
		return [][]string{urls}
	}
	var chunks [][]string
	for start := 0; start < len(urls); start += plan.MaxImagesPerSlide {
		end := start + plan.MaxImagesPerSlide
		if end > len(urls) {
			end = len(urls)
		}
		chunks = append(chunks, urls[start:end])
	}
	return chunks
}
