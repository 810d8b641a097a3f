package slidesapi

import (
	"strings"

	"google.golang.org/api/slides/v1"
)

// Placeholder types on the cover slide.
const (
	PlaceholderTitle = "TITLE"
	PlaceholderBody  = "BODY"
)

// FindFirst returns the first page element matching the predicate, or
// nil when none matches.
func FindFirst(page *slides.Page, match func(*slides.PageElement) bool) *slides.PageElement {
	if page == nil {
		return nil
	}
	for _, el := range page.PageElements {
		if match(el) {
			return el
		}
	}
	return nil
}

// FindFirstPlaceholder returns the objectId of the first placeholder
// shape of the given type, or "" when the slide has none.
func FindFirstPlaceholder(page *slides.Page, placeholderType string) string {
	el := FindFirst(page, func(el *slides.PageElement) bool {
		return el.Shape != nil && el.Shape.Placeholder != nil && el.Shape.Placeholder.Type == placeholderType
	})
	if el == nil {
		return ""
	}
	return el.ObjectId
}

// FindTextBoxes returns the slide's text-box shapes in document order.
func FindTextBoxes(page *slides.Page) []*slides.PageElement {
	if page == nil {
		return nil
	}
	var boxes []*slides.PageElement
	for _, el := range page.PageElements {
		if el.Shape != nil && el.Shape.ShapeType == "TEXT_BOX" {
			boxes = append(boxes, el)
		}
	}
	return boxes
}

// ElementText concatenates the text runs of a shape element.
func ElementText(el *slides.PageElement) string {
	if el == nil || el.Shape == nil || el.Shape.Text == nil {
		return ""
	}
	var sb strings.Builder
	for _, te := range el.Shape.Text.TextElements {
		if te.TextRun != nil {
			sb.WriteString(te.TextRun.Content)
		}
	}
	return sb.String()
}
