// Package plan precomputes how many content slides a generation run
// must provision before any remote call mutates the presentation.
package plan

import (
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// MaxImagesPerSlide is the packing rule for the basic and timeline
// templates: a slide carries the full text block plus at most two images.
const MaxImagesPerSlide = 2

// SlidePlan is the abstract plan computed before any remote mutation.
// TotalSlides counts content slides only; the cover slide created by
// presentation initialization is not part of the plan.
type SlidePlan struct {
	Template         types.TemplateKind
	SlidesPerRecord  []int
	HasOverviewSlide bool
	TotalSlides      int
}

// Compute builds the slide plan for a template and experience snapshot.
//
// Basic/timeline: an experience with k images occupies
// 1 + max(0, ceil((k-2)/2)) slides; every image-carrying overflow slide
// repeats the title/period/description block so each slide is
// self-describing. Timeline adds one leading overview slide.
// Photo: one slide per image; zero-image experiences contribute nothing.
func Compute(template types.TemplateKind, experiences []types.ExperienceRecord) SlidePlan {
	p := SlidePlan{
		Template:        template,
		SlidesPerRecord: make([]int, len(experiences)),
	}

	for i, exp := range experiences {
		switch template {
		case types.TemplatePhoto:
			p.SlidesPerRecord[i] = exp.ImageCount()
		default:
			p.SlidesPerRecord[i] = SlidesForImageCount(exp.ImageCount())
		}
		p.TotalSlides += p.SlidesPerRecord[i]
	}

	if template == types.TemplateTimeline {
		p.HasOverviewSlide = true
		p.TotalSlides++
	}

	return p
}

// SlidesForImageCount applies the basic/timeline packing rule for a
// single experience.
func SlidesForImageCount(imageCount int) int {
	if imageCount <= MaxImagesPerSlide {
		return 1
	}
	extra := imageCount - MaxImagesPerSlide
	return 1 + (extra+MaxImagesPerSlide-1)/MaxImagesPerSlide
}
