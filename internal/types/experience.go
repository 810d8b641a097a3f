// Package types defines the shared domain types for deck generation.
package types

// ExperienceRecord is one portfolio entry as stored in the user's
// portfolio spreadsheet. The pipeline treats a list of records as an
// immutable snapshot for the duration of one generation run.
type ExperienceRecord struct {
	Title       string   `json:"title"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"created_at,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// ImageCount returns the number of attached images.
func (e *ExperienceRecord) ImageCount() int {
	return len(e.ImageURLs)
}

// HasImages reports whether the record carries at least one image.
func (e *ExperienceRecord) HasImages() bool {
	return len(e.ImageURLs) > 0
}
