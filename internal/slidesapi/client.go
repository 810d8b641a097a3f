// Package slidesapi wraps the Google Slides REST API with the small,
// typed surface the generation pipeline needs: presentation creation,
// slide provisioning and size-bounded batch updates.
package slidesapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/slides/v1"
)

// MaxBatchRequests is the largest request list submitted in one remote
// call. Longer lists are split into sequential chunks; order must be
// preserved because later requests may reference objectIds created in
// earlier chunks of the same logical batch.
const MaxBatchRequests = 50

// blankLayout is the predefined layout used for provisioned slides.
const blankLayout = "BLANK"

// Client is the remote-call surface consumed by the layout engines and
// the pipeline orchestrator.
type Client interface {
	CreatePresentation(ctx context.Context, title string) (string, error)
	GetPresentation(ctx context.Context, presentationID string) (*slides.Presentation, error)
	CreateSlides(ctx context.Context, presentationID string, count int) ([]string, error)
	BatchUpdate(ctx context.Context, presentationID string, reqs []*slides.Request) ([]*slides.Response, error)
}

// googleClient implements Client against the real service.
type googleClient struct {
	svc *slides.Service

	// submit is the raw batch call; tests replace it to observe
	// chunking without network access.
	submit func(ctx context.Context, presentationID string, reqs []*slides.Request) (*slides.BatchUpdatePresentationResponse, error)
}

// New builds a Client authenticated by the given token source.
func New(ctx context.Context, ts oauth2.TokenSource) (Client, error) {
	svc, err := slides.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create slides service: %w", err)
	}
	c := &googleClient{svc: svc}
	c.submit = c.submitBatch
	return c, nil
}

func (c *googleClient) submitBatch(ctx context.Context, presentationID string, reqs []*slides.Request) (*slides.BatchUpdatePresentationResponse, error) {
	return c.svc.Presentations.BatchUpdate(presentationID, &slides.BatchUpdatePresentationRequest{
		Requests: reqs,
	}).Context(ctx).Do()
}

// CreatePresentation creates an empty presentation and returns its id.
func (c *googleClient) CreatePresentation(ctx context.Context, title string) (string, error) {
	p, err := c.svc.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", wrapError("create presentation", err)
	}
	return p.PresentationId, nil
}

// GetPresentation fetches the full presentation, including the slide
// list used as the local cache between mutation batches.
func (c *googleClient) GetPresentation(ctx context.Context, presentationID string) (*slides.Presentation, error) {
	p, err := c.svc.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError("get presentation", err)
	}
	return p, nil
}

// CreateSlides provisions count blank slides in one logical batch and
// returns their objectIds in creation order.
func (c *googleClient) CreateSlides(ctx context.Context, presentationID string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	ids := make([]string, count)
	reqs := make([]*slides.Request, count)
	for i := range reqs {
		ids[i] = NewObjectID("slide")
		reqs[i] = &slides.Request{
			CreateSlide: &slides.CreateSlideRequest{
				ObjectId: ids[i],
				SlideLayoutReference: &slides.LayoutReference{
					PredefinedLayout: blankLayout,
				},
			},
		}
	}

	if _, err := c.BatchUpdate(ctx, presentationID, reqs); err != nil {
		return nil, err
	}
	return ids, nil
}

// BatchUpdate submits a request list, splitting it into sequential
// chunks of at most MaxBatchRequests. Each chunk waits for the previous
// chunk's response; replies are concatenated in submission order.
func (c *googleClient) BatchUpdate(ctx context.Context, presentationID string, reqs []*slides.Request) ([]*slides.Response, error) {
	var replies []*slides.Response
	for start := 0; start < len(reqs); start += MaxBatchRequests {
		end := start + MaxBatchRequests
		if end > len(reqs) {
			end = len(reqs)
		}
		resp, err := c.submit(ctx, presentationID, reqs[start:end])
		if err != nil {
			return nil, wrapError("batch update", err)
		}
		replies = append(replies, resp.Replies...)
	}
	return replies, nil
}

// NewObjectID generates a page-element objectId with the given prefix.
func NewObjectID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s_%s", prefix, suffix)
}
