// Package layout translates experience records into positioned Slides
// API content requests. Three interchangeable engines cover the
// template styles: basic, timeline and photo.
package layout

import (
	"context"
	"fmt"

	"github.com/algo-rhythm/portfolio-deck/internal/imaging"
	"github.com/algo-rhythm/portfolio-deck/internal/progress"
	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
	"github.com/algo-rhythm/portfolio-deck/internal/types"
)

// Engine writes the content of one template style onto pre-provisioned
// blank slides. Engines never mutate the experience list.
type Engine interface {
	Layout(ctx context.Context, presentationID string, pool *Pool, experiences []types.ExperienceRecord, style types.ThemeStyle) error
}

// Deps carries the collaborators an engine needs. Prober is only
// consulted by the photo engine; a nil Prober gets a default.
type Deps struct {
	Client slidesapi.Client
	Sink   progress.Sink
	Prober *imaging.Prober
}

// ForTemplate returns the engine for a template kind.
func ForTemplate(kind types.TemplateKind, deps Deps) (Engine, error) {
	base := engine{client: deps.Client, sink: deps.Sink}
	switch kind {
	case types.TemplateBasic:
		return &BasicEngine{engine: base}, nil
	case types.TemplateTimeline:
		return &TimelineEngine{engine: base}, nil
	case types.TemplatePhoto:
		prober := deps.Prober
		if prober == nil {
			prober = imaging.NewProber(nil)
		}
		return &PhotoEngine{engine: base, prober: prober}, nil
	default:
		return nil, fmt.Errorf("unknown template kind %q", kind)
	}
}

// PlanConsistencyError reports that the provisioned slide pool ran out
// before all planned placements completed. The plan and the pool are
// derived from the same inputs, so exhaustion means an internal defect,
// not a user error.
type PlanConsistencyError struct {
	Provisioned int
}

func (e *PlanConsistencyError) Error() string {
	return fmt.Sprintf("slide pool exhausted after %d provisioned slides", e.Provisioned)
}

// Pool hands out pre-created blank slide ids in provisioning order.
type Pool struct {
	ids  []string
	next int
}

// NewPool wraps an ordered list of slide objectIds.
func NewPool(ids []string) *Pool {
	return &Pool{ids: ids}
}

// Next returns the next unused slide id, or a *PlanConsistencyError
// when the pool is exhausted.
func (p *Pool) Next() (string, error) {
	if p.next >= len(p.ids) {
		return "", &PlanConsistencyError{Provisioned: len(p.ids)}
	}
	id := p.ids[p.next]
	p.next++
	return id, nil
}

// Remaining returns the number of unused slides.
func (p *Pool) Remaining() int {
	return len(p.ids) - p.next
}

// engine holds the collaborators shared by all template engines.
type engine struct {
	client slidesapi.Client
	sink   progress.Sink
}

func (e *engine) report(ev progress.Event) {
	if e.sink != nil {
		e.sink.Report(ev)
	}
}

// applyBackground paints the theme background across every touched
// slide in one grouped batch.
func (e *engine) applyBackground(ctx context.Context, presentationID string, slideIDs []string, color types.RGB) error {
	if len(slideIDs) == 0 {
		return nil
	}
	_, err := e.client.BatchUpdate(ctx, presentationID, SolidBackgroundRequests(slideIDs, color))
	return err
}
