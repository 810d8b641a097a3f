package layout

import (
	"google.golang.org/api/slides/v1"

	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

const fontFamily = "Arial"

// Text and image placement grid, in points. The text column sits on the
// left, the image column on the right.
const (
	titleBoxX     = 50.0
	titleBoxY     = 50.0
	titleBoxW     = 400.0
	titleBoxH     = 60.0
	titleFontSize = 24.0

	periodBoxX = 50.0
	periodBoxY = 100.0
	periodBoxW = 350.0
	periodBoxH = 40.0

	descBoxX = 50.0
	descBoxY = 150.0
	descBoxW = 300.0
	descBoxH = 80.0

	imageColumnX = 400.0
	imageColumnY = 100.0
	imageSpacing = 20.0

	basicImageW = 250.0
	basicImageH = 150.0

	timelineImageW = 200.0
	timelineImageH = 120.0
)

// box is a placement rectangle in points.
type box struct {
	x, y, w, h float64
}

func elementProperties(slideID string, b box) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectId: slideID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: b.w, Unit: "PT"},
			Height: &slides.Dimension{Magnitude: b.h, Unit: "PT"},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     1,
			ScaleY:     1,
			TranslateX: b.x,
			TranslateY: b.y,
			Unit:       "PT",
		},
	}
}

func rgbColor(c types.RGB) *slides.OpaqueColor {
	return &slides.OpaqueColor{
		RgbColor: &slides.RgbColor{
			Red:             c.Red,
			Green:           c.Green,
			Blue:            c.Blue,
			ForceSendFields: []string{"Red", "Green", "Blue"},
		},
	}
}

// styledTextBoxRequests creates a text box carrying bold heading text in
// the theme's text color.
func styledTextBoxRequests(slideID, text string, b box, fontSize float64, color types.RGB) []*slides.Request {
	objectID := slidesapi.NewObjectID("textbox")
	reqs := []*slides.Request{{
		CreateShape: &slides.CreateShapeRequest{
			ObjectId:          objectID,
			ShapeType:         "TEXT_BOX",
			ElementProperties: elementProperties(slideID, b),
		},
	}}
	if text == "" {
		return reqs
	}
	return append(reqs,
		&slides.Request{
			InsertText: &slides.InsertTextRequest{ObjectId: objectID, Text: text},
		},
		&slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId: objectID,
				Style: &slides.TextStyle{
					Bold:            true,
					FontSize:        &slides.Dimension{Magnitude: fontSize, Unit: "PT"},
					FontFamily:      fontFamily,
					ForegroundColor: &slides.OptionalColor{OpaqueColor: rgbColor(color)},
				},
				Fields:    "bold,fontSize,fontFamily,foregroundColor",
				TextRange: &slides.Range{Type: "ALL"},
			},
		},
	)
}

// textBoxRequests creates a plain text box; the theme text color is
// still applied to the inserted run.
func textBoxRequests(slideID, text string, b box, color types.RGB) []*slides.Request {
	objectID := slidesapi.NewObjectID("textbox")
	reqs := []*slides.Request{{
		CreateShape: &slides.CreateShapeRequest{
			ObjectId:          objectID,
			ShapeType:         "TEXT_BOX",
			ElementProperties: elementProperties(slideID, b),
		},
	}}
	if text == "" {
		return reqs
	}
	return append(reqs,
		&slides.Request{
			InsertText: &slides.InsertTextRequest{ObjectId: objectID, Text: text},
		},
		&slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectId: objectID,
				Style: &slides.TextStyle{
					ForegroundColor: &slides.OptionalColor{OpaqueColor: rgbColor(color)},
				},
				Fields:    "foregroundColor",
				TextRange: &slides.Range{Type: "ALL"},
			},
		},
	)
}

// imageRequests places one image from its hosted URL.
func imageRequests(slideID, url string, b box) []*slides.Request {
	return []*slides.Request{{
		CreateImage: &slides.CreateImageRequest{
			ObjectId:          slidesapi.NewObjectID("image"),
			Url:               url,
			ElementProperties: elementProperties(slideID, b),
		},
	}}
}

// textBlockRequests writes the title/period/description block an
// experience repeats on each of its slides.
func textBlockRequests(slideID string, exp types.ExperienceRecord, color types.RGB) []*slides.Request {
	reqs := styledTextBoxRequests(slideID, exp.Title, box{titleBoxX, titleBoxY, titleBoxW, titleBoxH}, titleFontSize, color)
	reqs = append(reqs, textBoxRequests(slideID, exp.Period, box{periodBoxX, periodBoxY, periodBoxW, periodBoxH}, color)...)
	reqs = append(reqs, textBoxRequests(slideID, exp.Description, box{descBoxX, descBoxY, descBoxW, descBoxH}, color)...)
	return reqs
}

// SolidBackgroundRequests fills every listed slide with one color.
func SolidBackgroundRequests(slideIDs []string, color types.RGB) []*slides.Request {
	reqs := make([]*slides.Request, 0, len(slideIDs))
	for _, id := range slideIDs {
		reqs = append(reqs, &slides.Request{
			UpdatePageProperties: &slides.UpdatePagePropertiesRequest{
				ObjectId: id,
				PageProperties: &slides.PageProperties{
					PageBackgroundFill: &slides.PageBackgroundFill{
						SolidFill: &slides.SolidFill{Color: rgbColor(color)},
					},
				},
				Fields: "pageBackgroundFill.solidFill.color",
			},
		})
	}
	return reqs
}

// BackgroundImageRequests stretches one hosted image across every
// listed slide.
func BackgroundImageRequests(slideIDs []string, imageURL string) []*slides.Request {
	reqs := make([]*slides.Request, 0, len(slideIDs))
	for _, id := range slideIDs {
		reqs = append(reqs, &slides.Request{
			UpdatePageProperties: &slides.UpdatePagePropertiesRequest{
				ObjectId: id,
				PageProperties: &slides.PageProperties{
					PageBackgroundFill: &slides.PageBackgroundFill{
						StretchedPictureFill: &slides.StretchedPictureFill{ContentUrl: imageURL},
					},
				},
				Fields: "pageBackgroundFill.stretchedPictureFill.contentUrl",
			},
		})
	}
	return reqs
}
