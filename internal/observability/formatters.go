// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/algo-rhythm/portfolio-deck/internal/plan"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExperiences outputs a human-readable summary of the loaded
// experience records.
func (p *Printer) PrintExperiences(experiences []types.ExperienceRecord) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Records:  %d\n", len(experiences)))
	sb.WriteString("\n")

	count := min(len(experiences), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := experiences[i]
		sb.WriteString(fmt.Sprintf("  • %s", exp.Title))
		if exp.Period != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", exp.Period))
		}
		if len(exp.ImageURLs) > 0 {
			sb.WriteString(fmt.Sprintf(" [%d image(s)]", len(exp.ImageURLs)))
		}
		sb.WriteString("\n")
	}
	if len(experiences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(experiences)-maxItemsToShow))
	}

	p.printBox("Experience Records", strings.TrimRight(sb.String(), "\n"))
}

// PrintPlan outputs the slide plan computed for a run.
func (p *Printer) PrintPlan(sp plan.SlidePlan) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Template: %s\n", sp.Template))
	sb.WriteString(fmt.Sprintf("Slides:   %d content slide(s)\n", sp.TotalSlides))
	if sp.HasOverviewSlide {
		sb.WriteString("Overview: yes\n")
	}
	sb.WriteString("\n")

	count := min(len(sp.SlidesPerRecord), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • record %d: %d slide(s)\n", i+1, sp.SlidesPerRecord[i]))
	}
	if len(sp.SlidesPerRecord) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sp.SlidesPerRecord)-maxItemsToShow))
	}

	p.printBox("Slide Plan", strings.TrimRight(sb.String(), "\n"))
}

// PrintTheme outputs the resolved theme colors.
func (p *Printer) PrintTheme(style types.ThemeStyle) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Background: #%02X%02X%02X\n",
		int(style.BackgroundColor.Red*255), int(style.BackgroundColor.Green*255), int(style.BackgroundColor.Blue*255)))
	sb.WriteString(fmt.Sprintf("Text:       #%02X%02X%02X",
		int(style.TextColor.Red*255), int(style.TextColor.Green*255), int(style.TextColor.Blue*255)))
	p.printBox("Theme", sb.String())
}
