// Package imaging probes remote images for their pixel dimensions so
// the layout engines can choose between portrait and landscape
// placement without downloading full files twice.
package imaging

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	// Register the decoders the portfolio images actually use.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds a single dimension fetch.
const DefaultProbeTimeout = 5 * time.Second

// Fallback dimensions assumed when a probe fails. Landscape, so a
// broken image never triggers the portrait layout by accident.
const (
	FallbackWidth  = 1920
	FallbackHeight = 1080
)

// Dimensions holds a probed image size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// IsPortrait reports whether the image should use portrait placement.
// Square images count as portrait.
func (d Dimensions) IsPortrait() bool {
	return d.Width <= d.Height
}

// Prober fetches image dimensions over HTTP.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// NewProber builds a Prober. A nil client falls back to
// http.DefaultClient.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{client: client, timeout: DefaultProbeTimeout}
}

// Probe returns the dimensions of the image at url. The image header is
// decoded without reading the full body.
func (p *Prober) Probe(ctx context.Context, url string) (Dimensions, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Dimensions{}, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

// ProbeAll probes every URL concurrently and returns dimensions in the
// same order. A failed probe yields the landscape fallback instead of
// an error; a missing image should not sink the whole deck.
func (p *Prober) ProbeAll(ctx context.Context, urls []string) []Dimensions {
	dims := make([]Dimensions, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			d, err := p.Probe(ctx, url)
			if err != nil {
				d = Dimensions{Width: FallbackWidth, Height: FallbackHeight}
			}
			dims[i] = d
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return dims
}
