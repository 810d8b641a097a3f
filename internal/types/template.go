package types

import "fmt"

// TemplateKind selects the layout algorithm for a generation run.
type TemplateKind string

const (
	TemplateBasic    TemplateKind = "basic"
	TemplateTimeline TemplateKind = "timeline"
	TemplatePhoto    TemplateKind = "photo"
)

// ParseTemplateKind validates a template name.
func ParseTemplateKind(s string) (TemplateKind, error) {
	switch TemplateKind(s) {
	case TemplateBasic, TemplateTimeline, TemplatePhoto:
		return TemplateKind(s), nil
	}
	return "", fmt.Errorf("unknown template %q (want basic, timeline or photo)", s)
}
